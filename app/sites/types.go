package sites

// Site parsing types

// Fragment is a raw special-issue block as extracted from a publisher page,
// before normalization. Text fields are untrimmed and the detail URL may be
// relative to the journal page.
type Fragment struct {
	Title        string
	Deadline     string
	GuestEditors string
	Description  string
	DetailURL    string
}
