package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for public book documents.
//
// Text fields use the simple analyzer rather than a language-specific one:
// titles and names in the listing mix languages, and stemming one of them
// would skew matches for the others.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = simple.Name

	docMapping := bleve.NewDocumentMapping()

	// Title - primary search target
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = simple.Name
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Author - searchable
	authorFieldMapping := bleve.NewTextFieldMapping()
	authorFieldMapping.Analyzer = simple.Name
	authorFieldMapping.Store = true
	authorFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("author", authorFieldMapping)

	// Description - searchable but not stored
	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = simple.Name
	descFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	// Owner name - searchable
	ownerFieldMapping := bleve.NewTextFieldMapping()
	ownerFieldMapping.Analyzer = simple.Name
	ownerFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("owner_name", ownerFieldMapping)

	// Status - exact match filter
	statusFieldMapping := bleve.NewTextFieldMapping()
	statusFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("status", statusFieldMapping)

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Numerics for sorting
	sharedAtFieldMapping := bleve.NewNumericFieldMapping()
	sharedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("shared_at", sharedAtFieldMapping)

	viewCountFieldMapping := bleve.NewNumericFieldMapping()
	viewCountFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("view_count", viewCountFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
