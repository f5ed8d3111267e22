package models

// Field names usable in collection matches. They double as column names.
const (
	FieldID          = "id"
	FieldEmail       = "email"
	FieldOwnerUserID = "owner_user_id"
	FieldCaseID      = "case_id"
)
