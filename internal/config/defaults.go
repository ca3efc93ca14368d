package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/tsunagu/data/db/tsunagu.db"
	}
	if cfg.Storage.RoleIndexPath == "" {
		cfg.Storage.RoleIndexPath = "/usr/local/var/tsunagu/data/indices/roles"
	}
	if cfg.Storage.MaxUploadBytes == 0 {
		cfg.Storage.MaxUploadBytes = 5 * 1024 * 1024
	}
	if cfg.Parser.MaxSkills == 0 {
		cfg.Parser.MaxSkills = 30
	}
	if cfg.Parser.MaxEducationEntries == 0 {
		cfg.Parser.MaxEducationEntries = 5
	}
	if cfg.Parser.MaxExperienceEntries == 0 {
		cfg.Parser.MaxExperienceEntries = 10
	}
	if cfg.Parser.HeaderLines == 0 {
		cfg.Parser.HeaderLines = 10
	}
	if cfg.Match.SkillsWeight == 0 {
		cfg.Match.SkillsWeight = 0.4
	}
	if cfg.Match.ExperienceWeight == 0 {
		cfg.Match.ExperienceWeight = 0.3
	}
	if cfg.Match.LocationWeight == 0 {
		cfg.Match.LocationWeight = 0.15
	}
	if cfg.Match.WorkPreferenceWeight == 0 {
		cfg.Match.WorkPreferenceWeight = 0.15
	}
	if cfg.Match.MinScore == 0 {
		cfg.Match.MinScore = 0.3
	}
	if cfg.Intake.Extensions == nil {
		cfg.Intake.Extensions = []string{".pdf", ".docx", ".txt"}
	}
}
