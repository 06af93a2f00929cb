package model

// Voteable type discriminators. gorm's polymorphic association stores the
// owning table name, so the constants must match the table names exactly.
const (
	VoteableAnswer   = "answers"
	VoteableQuestion = "questions"
)

// VoteableTable maps a voteable_type discriminator to a prototype of the
// entity it targets. Vote targets are resolved through this table rather
// than by reflection, so an unknown type is rejected up front.
var VoteableTable = map[string]func() any{
	VoteableAnswer:   func() any { return &Answer{} },
	VoteableQuestion: func() any { return &Question{} },
}
