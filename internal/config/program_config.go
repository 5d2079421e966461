package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ProgramConfig represents the structure of the program.yaml file.
// Program wording and terms are easier to maintain in YAML than in env vars.
type ProgramConfig struct {
	ProgramName   string   `yaml:"program_name"`
	CommitteeName string   `yaml:"committee_name"`
	TownName      string   `yaml:"town_name"`
	BannerStreets []string `yaml:"banner_streets"`
	Terms         []string `yaml:"terms"`
}

// DefaultProgramConfig returns the built-in program wording used when no
// program.yaml is present.
func DefaultProgramConfig() *ProgramConfig {
	return &ProgramConfig{
		ProgramName:   "Hometown Hero Banner Program",
		CommitteeName: "The Berkeley Heights Veterans Affairs Committee",
		TownName:      "Berkeley Heights",
		BannerStreets: []string{"Springfield Avenue", "Plainfield Avenue", "Snyder Avenue", "Park Avenue"},
		Terms: []string{
			"ELIGIBILITY REQUIREMENT: This program is exclusively for veterans who actually lived in Berkeley Heights, NJ. Veterans who never resided in our town are not eligible for hometown hero banners.",
			"1. Residency Verification: All applications are reviewed to verify the veteran's genuine connection to Berkeley Heights. Applications for veterans who did not live in Berkeley Heights will be rejected.",
			"2. I will receive an email once my submission has been approved.",
			"3. New banner submissions are sent to the printers 2 weeks before Memorial Day (mid-May) and 2 weeks before Veterans Day (late October). Once the banners arrive, they will be hung on one of the main streets of Berkeley Heights.",
			"4. The location of banners cannot be controlled; placement is determined by the Department of Public Works (DPW), who works hard to put them up, take them down, and maintain the banners.",
			"5. To locate a specific banner, you will need to drive around Berkeley Heights and look on Springfield Avenue, Plainfield Avenue, Snyder Avenue, and Park Avenue.",
			"6. Each veteran can only have one banner; multiple submissions for the same veteran will be rejected.",
			"7. Once printed, the town will continue to display the banner each Memorial Day and Veterans Day. The banners are reusable, heavy-duty, and designed for long-term use.",
			"8. The banners are paid for by the Berkeley Heights Veterans Affairs Committee and are at no cost to you or the veteran.",
		},
	}
}

// LoadProgramConfig loads the YAML program configuration file.
// Path is determined by PROGRAM_CONFIG_FILE, defaulting to "program.yaml".
// Returns the built-in defaults if the file doesn't exist.
func LoadProgramConfig() (*ProgramConfig, error) {
	path := getEnv("PROGRAM_CONFIG_FILE", "program.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return DefaultProgramConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultProgramConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
