package cache

// Keyer derives cache keys for pipeline outputs.
type Keyer interface {
	// ArtifactKey returns the key for a rendered page.
	ArtifactKey(deckHash string, opts ArtifactKeyOpts) string

	// OutlineKey returns the key for a rendered outline diagram.
	OutlineKey(deckHash string, opts OutlineKeyOpts) string
}

// ArtifactKeyOpts holds the inputs besides the deck that affect a page.
type ArtifactKeyOpts struct {
	ConfigHash string `json:"config_hash"`
	Version    string `json:"version,omitempty"`
}

// OutlineKeyOpts holds the inputs besides the deck that affect an outline.
type OutlineKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer hashes every key input into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "page:<sha256>".
func (DefaultKeyer) ArtifactKey(deckHash string, opts ArtifactKeyOpts) string {
	return hashKey("page", deckHash, opts)
}

// OutlineKey returns "outline:<sha256>".
func (DefaultKeyer) OutlineKey(deckHash string, opts OutlineKeyOpts) string {
	return hashKey("outline", deckHash, opts)
}
