package models

// User-facing messages shared by the TUI, CLI and MCP surfaces.
const (
	MsgInvalidEntry = "Please fill all fields correctly."
	MsgAdded        = "Number added!"
	MsgNetworkError = "Network error."
	MsgNoResults    = "No results found."
	MsgAddFailed    = "Failed to add"
	MsgSearchFailed = "Failed to search"
	MsgDeleteFailed = "Failed to delete"
	MsgDeleted      = "Number deleted."
	MsgCopied       = "Copied!"
	MsgCopyFailed   = "Failed to copy."
	MsgSelectState  = "Select state"
	MsgAnyState     = "Any state"
)
