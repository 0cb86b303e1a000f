package driven

// Normaliser cleans one reference text format before it is used in prompts.
type Normaliser interface {
	// Normalise transforms raw file content into plain text
	Normalise(content string) string

	// Extensions returns the file extensions this normaliser handles,
	// lower case with the leading dot. "*" matches any file.
	Extensions() []string

	// Priority returns the normaliser priority (higher = more specific).
	//   50-100: Format-specific (Markdown, HTML)
	//   1-9:    Fallback (plain text)
	Priority() int
}

// NormaliserRegistry picks a normaliser by file name.
// When multiple normalisers match, the highest priority one is used.
type NormaliserRegistry interface {
	// Get returns the best normaliser for a path, or nil
	Get(path string) Normaliser

	// Register registers a normaliser
	Register(normaliser Normaliser)

	// List returns all registered extensions
	List() []string
}

// Section is one piece of a reference document
type Section struct {
	// Key identifies the section, e.g. the category code of a "## DRG3" block.
	// Empty for text before the first heading.
	Key string

	// Content is the section body without its heading
	Content string

	// Position is the section index within the document (0-based)
	Position int
}

// SectionProcessor is one stage of a SectionPipeline.
type SectionProcessor interface {
	// Process transforms the sections produced by the previous stage.
	// The first stage receives one keyless section with the whole document.
	Process(sections []Section) []Section

	// Name returns the processor name for logging/debugging.
	Name() string

	// Order returns the stage position (lower = earlier).
	Order() int
}

// SectionPipeline chains section processors in order.
type SectionPipeline interface {
	// Process runs every stage over a document
	Process(content string) []Section

	// Add adds a processor. Processors are sorted by Order() before use.
	Add(processor SectionProcessor)

	// List returns processor names in order.
	List() []string
}
