// Package negarit cleans OCR'd legal gazette text and extracts a structured
// record (title, description, parts) from it.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, etree/), while the
// dependency-free cleaning and extraction algorithms live in clean/ and
// extract/.
package negarit
