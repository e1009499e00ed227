package types

// WorkspaceConfig holds the directory layout of a docsmith workspace. Relative
// directories are resolved against Root.
type WorkspaceConfig struct {
	// Root is the workspace root directory (default ".").
	Root string `json:"root" yaml:"root"`

	// ConfigDir holds one YAML configuration per document (default "configs").
	ConfigDir string `json:"config_dir" yaml:"config_dir"`

	// ModulesDir holds module files and module maps (default "modules").
	ModulesDir string `json:"modules_dir" yaml:"modules_dir"`

	// DistDir holds assembled documents and converted outputs (default "dist").
	DistDir string `json:"dist_dir" yaml:"dist_dir"`
}

// ConversionBackend selects how pandoc is executed.
type ConversionBackend string

const (
	// BackendAuto uses a local pandoc binary when present, otherwise a container.
	BackendAuto      ConversionBackend = "auto"
	BackendLocal     ConversionBackend = "local"
	BackendContainer ConversionBackend = "container"
)

// OutputFormat is a conversion target.
type OutputFormat string

const (
	FormatDOCX OutputFormat = "docx"
	FormatPDF  OutputFormat = "pdf"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// Backend selects local pandoc, a container image, or auto-detection.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// Image is the container image used by the container backend.
	Image string `json:"image" yaml:"image"`

	// TOCDepth is the table-of-contents depth passed to pandoc (default 3).
	TOCDepth int `json:"toc_depth" yaml:"toc_depth"`

	// PDFEngine is the preferred PDF engine (default "xelatex").
	PDFEngine string `json:"pdf_engine" yaml:"pdf_engine"`

	// FallbackPDFEngine is used by the degraded retry (default "pdflatex").
	FallbackPDFEngine string `json:"fallback_pdf_engine" yaml:"fallback_pdf_engine"`

	// MainFont is the PDF main font; dropped on the degraded retry.
	MainFont string `json:"main_font" yaml:"main_font"`
}
