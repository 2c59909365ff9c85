// Package docsearch provides a local, CLI-based document store with full-text
// search. Uploaded files are kept in an object storage directory, their text
// is indexed for search, and every document is classified into a fixed
// taxonomy (topic, project, team) by an LLM.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, trafilatura/).
package docsearch
