package openapi

const (
	defaultTitle         = "Registration"
	defaultVersion       = "1.0.0"
	defaultPath          = "/register"
	defaultOperationID   = "submitRegistration"
	FormSchemaName       = "RegistrationForm"
	ErrorMapSchemaName   = "ErrorMap"
	extensionRules       = "x-regform-rules"
	extensionPolicy      = "x-regform-policy"
	extensionLivePreview = "x-regform-live-preview"
)

type exportOptions struct {
	title       string
	version     string
	path        string
	operationID string
}

// Option customises the exported document.
type Option func(*exportOptions)

// WithTitle sets info.title.
func WithTitle(title string) Option {
	return func(o *exportOptions) {
		if title != "" {
			o.title = title
		}
	}
}

// WithVersion sets info.version.
func WithVersion(version string) Option {
	return func(o *exportOptions) {
		if version != "" {
			o.version = version
		}
	}
}

// WithPath sets the path the submit operation is mounted on.
func WithPath(path string) Option {
	return func(o *exportOptions) {
		if path != "" {
			o.path = path
		}
	}
}

// WithOperationID overrides the submit operationId.
func WithOperationID(id string) Option {
	return func(o *exportOptions) {
		if id != "" {
			o.operationID = id
		}
	}
}

func newExportOptions(options []Option) exportOptions {
	cfg := exportOptions{
		title:       defaultTitle,
		version:     defaultVersion,
		path:        defaultPath,
		operationID: defaultOperationID,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
