package field

// Options is the typed form of a declaration's attribute mapping. The
// mapstructure tags match the keys accepted in definition files and
// fields.Spec attribute maps.
type Options struct {
	Type              string   `mapstructure:"type"`
	Label             string   `mapstructure:"label"`
	Order             int      `mapstructure:"order"`
	Required          *bool    `mapstructure:"required"`
	RequiredMessage   string   `mapstructure:"required_message"`
	Title             string   `mapstructure:"title"`
	CSSClass          string   `mapstructure:"css_class"`
	Size              int      `mapstructure:"size"`
	MaxLength         int      `mapstructure:"max_length"`
	MinLength         int      `mapstructure:"min_length"`
	Min               *int     `mapstructure:"min"`
	Max               *int     `mapstructure:"max"`
	Pattern           string   `mapstructure:"pattern"`
	Default           any      `mapstructure:"default"`
	Widget            string   `mapstructure:"widget"`
	Help              string   `mapstructure:"help"`
	CheckboxValue     string   `mapstructure:"checkbox_value"`
	InputWithoutParam any      `mapstructure:"input_without_param"`
	Choices           []Choice `mapstructure:"options"`
	NoUpdate          bool     `mapstructure:"noupdate"`
	WriteOnly         bool     `mapstructure:"writeonly"`
	Inactive          bool     `mapstructure:"inactive"`
	Disabled          bool     `mapstructure:"disabled"`
	ReadOnly          bool     `mapstructure:"readonly"`
}
