package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/infrastructure/repositories/spreadsheet"
)

// Config holds the full application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Policy  PolicyConfig  `yaml:"policy" mapstructure:"policy"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// CatalogConfig configures how the REPO workbook is read and filtered.
type CatalogConfig struct {
	Sheet          string   `yaml:"sheet" mapstructure:"sheet"`
	Family         string   `yaml:"family" mapstructure:"family"`
	Subfamily      string   `yaml:"subfamily" mapstructure:"subfamily"`
	Inactive       string   `yaml:"inactive" mapstructure:"inactive"`
	ExcludedGroups []string `yaml:"excluded_groups" mapstructure:"excluded_groups"`
}

// PolicyConfig overrides the purchasing policy numbers.
type PolicyConfig struct {
	PriorityClasses   []string       `yaml:"priority_classes" mapstructure:"priority_classes"`
	PriceThresholdPct float64        `yaml:"price_threshold_pct" mapstructure:"price_threshold_pct"`
	CaseA             CaseRuleConfig `yaml:"case_a" mapstructure:"case_a"`
	CaseB             CaseRuleConfig `yaml:"case_b" mapstructure:"case_b"`
	CaseC             CaseRuleConfig `yaml:"case_c" mapstructure:"case_c"`
}

// CaseRuleConfig configures one allocation case.
type CaseRuleConfig struct {
	DemandMonths      int64 `yaml:"demand_months" mapstructure:"demand_months"`
	ContractMonths    int64 `yaml:"contract_months" mapstructure:"contract_months"`
	MexicoNumerator   int64 `yaml:"mexico_numerator" mapstructure:"mexico_numerator"`
	MexicoDenominator int64 `yaml:"mexico_denominator" mapstructure:"mexico_denominator"`
}

// OutputConfig configures result files.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Dir    string `yaml:"dir" mapstructure:"dir"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMPRAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	filter := spreadsheet.DefaultCatalogFilter()
	policy := entities.DefaultPolicy()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("catalog.sheet", "")
	v.SetDefault("catalog.family", filter.Family)
	v.SetDefault("catalog.subfamily", filter.Subfamily)
	v.SetDefault("catalog.inactive", filter.Inactive)
	v.SetDefault("catalog.excluded_groups", filter.ExcludedGroups)
	v.SetDefault("policy.priority_classes", policy.PriorityClasses)
	v.SetDefault("policy.price_threshold_pct", policy.PriceSwitchThresholdPct.InexactFloat64())
	setRuleDefaults(v, "policy.case_a", policy.MexicoRule)
	setRuleDefaults(v, "policy.case_b", policy.PriorityRule)
	setRuleDefaults(v, "policy.case_c", policy.DefaultRule)
	v.SetDefault("output.format", "text")
	v.SetDefault("output.dir", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func setRuleDefaults(v *viper.Viper, key string, rule entities.CaseRule) {
	v.SetDefault(key+".demand_months", rule.DemandMonths)
	v.SetDefault(key+".contract_months", rule.ContractMonths)
	v.SetDefault(key+".mexico_numerator", rule.MexicoNumerator)
	v.SetDefault(key+".mexico_denominator", rule.MexicoDenominator)
}

// CatalogFilter returns the catalog filter configured for the REPO loader.
func (c *Config) CatalogFilter() spreadsheet.CatalogFilter {
	return spreadsheet.CatalogFilter{
		Family:         c.Catalog.Family,
		Subfamily:      c.Catalog.Subfamily,
		Inactive:       c.Catalog.Inactive,
		ExcludedGroups: c.Catalog.ExcludedGroups,
	}
}

// PurchasePolicy builds the policy from the configured numbers, keeping case tags and labels.
func (c *Config) PurchasePolicy() (entities.Policy, error) {
	policy := entities.DefaultPolicy()
	policy.PriorityClasses = c.Policy.PriorityClasses
	policy.PriceSwitchThresholdPct = decimal.NewFromFloat(c.Policy.PriceThresholdPct)

	rules := []struct {
		name string
		cfg  CaseRuleConfig
		rule *entities.CaseRule
	}{
		{"case_a", c.Policy.CaseA, &policy.MexicoRule},
		{"case_b", c.Policy.CaseB, &policy.PriorityRule},
		{"case_c", c.Policy.CaseC, &policy.DefaultRule},
	}
	for _, r := range rules {
		if r.cfg.MexicoDenominator <= 0 || r.cfg.MexicoNumerator < 0 || r.cfg.MexicoNumerator > r.cfg.MexicoDenominator {
			return entities.Policy{}, eris.Errorf("config: policy.%s: mexico share %d/%d is not a fraction in [0, 1]",
				r.name, r.cfg.MexicoNumerator, r.cfg.MexicoDenominator)
		}
		r.rule.DemandMonths = r.cfg.DemandMonths
		r.rule.ContractMonths = r.cfg.ContractMonths
		r.rule.MexicoNumerator = r.cfg.MexicoNumerator
		r.rule.MexicoDenominator = r.cfg.MexicoDenominator
	}
	if !policy.MexicoRule.MexicoOnly() {
		return entities.Policy{}, eris.New("config: policy.case_a must send the whole purchase to Mexico")
	}

	return policy, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
