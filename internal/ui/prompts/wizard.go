package prompts

import (
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
)

// InitSettings are the values asked for on the very first run.
type InitSettings struct {
	BaseURL        string
	CurrencySymbol string
}

func PromptInitSettings(defaults InitSettings) (InitSettings, error) {
	baseURL := defaults.BaseURL
	symbol := defaults.CurrencySymbol

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Welcome to atm! This is the first execute, please set the backend URL:").
				Description("Base URL of the account service, e.g. https://bank.example.com/api/atm").
				Value(&baseURL).
				Validate(validateBaseURL),
			huh.NewSelect[string]().
				Title("Currency symbol shown next to amounts:").
				Options(
					huh.NewOption("$", "$"),
					huh.NewOption("₹", "₹"),
					huh.NewOption("€", "€"),
					huh.NewOption("£", "£"),
					huh.NewOption("¥", "¥"),
				).
				Value(&symbol),
		),
	)

	if err := form.Run(); err != nil {
		return InitSettings{}, err
	}

	return InitSettings{
		BaseURL:        strings.TrimSpace(baseURL),
		CurrencySymbol: symbol,
	}, nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("please enter an http(s) URL")
	}
	return nil
}
