package domain

import "errors"

var (
	// ErrProductNotFound is returned when an id does not resolve against the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrEmptyMessage is returned when a sommelier submit carries no text after trimming
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSessionBusy is returned when a submit arrives while a reply is already in flight
	ErrSessionBusy = errors.New("a reply is already in flight for this session")

	// ErrEmptyReply is returned when the collaborator answers without a usable text body
	ErrEmptyReply = errors.New("collaborator returned an empty reply")

	// ErrGenAIFailure is returned when the generative API request fails
	ErrGenAIFailure = errors.New("generative API request failed")

	// ErrInvalidCatalog is returned when the catalog seed data fails validation
	ErrInvalidCatalog = errors.New("invalid catalog seed data")
)
