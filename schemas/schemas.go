// Package schemas embeds the JSON Schemas for tripcompare documents.
package schemas

import _ "embed"

// ItinerarySchemaJSON is the JSON Schema for a single itinerary document.
//
//go:embed itinerary.schema.json
var ItinerarySchemaJSON string
