package views

import "github.com/pterm/pterm"

type SystemInfoItem struct {
	ConfigPath     string
	AppDataDir     string
	BackendURL     string
	Timeout        string
	CurrencySymbol string
	StatusTTL      string
	LogLevel       string
	LogFile        string
	LogFileExists  bool
}

func RenderSystemInfo(data SystemInfoItem) error {
	logStatus := pterm.Green("Found")
	if !data.LogFileExists {
		logStatus = pterm.Red("Not Found (Will be created)")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"AppData Directory", data.AppDataDir},
		{"Backend URL", data.BackendURL},
		{"Request Timeout", data.Timeout},
		{"Currency Symbol", data.CurrencySymbol},
		{"Status Message TTL", data.StatusTTL},
		{"Log Level", data.LogLevel},
		{"Log File", data.LogFile},
		{"Log File Status", logStatus},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
