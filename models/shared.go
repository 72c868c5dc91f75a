package models

// Address is a structured postal address. Both lines default to empty
// strings rather than being omitted, so historical snapshots always carry
// a well-formed value.
type Address struct {
	Line1 string `bson:"line1" json:"line1"`
	Line2 string `bson:"line2" json:"line2"`
}
