package models

// Chapter is static reference data from the remote catalog: one named
// division of the memorized work, with its passage count.
type Chapter struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	NativeName     string `json:"native_name"`
	Passages       int    `json:"passages"`
	TranslatedName string `json:"translated_name"`
}
