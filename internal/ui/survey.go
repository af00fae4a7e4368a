package ui

import "github.com/AlecAivazis/survey/v2"

// IconOption returns a survey option that sets the question icon to "-"
// This keeps survey prompts in line with the huh forms.
func IconOption() survey.AskOpt {
	return survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "-"
	})
}

// AskSecret reads a masked value such as a PIN. validator may be nil.
func AskSecret(message string, validator func(string) error) (string, error) {
	var secret string

	opts := []survey.AskOpt{IconOption()}
	if validator != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validator(s)
		}))
	}

	err := survey.AskOne(&survey.Password{Message: message}, &secret, opts...)
	return secret, err
}
