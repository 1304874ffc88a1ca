package search

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// buildQuery constructs the Bleve query for a free-text search.
// Title matches rank highest, then author, then owner and description.
// A fuzzy clause on the title tolerates single-character typos.
func buildQuery(queryText string) query.Query {
	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return bleve.NewMatchAllQuery()
	}

	textQueries := []query.Query{}

	titleMatch := bleve.NewMatchQuery(queryText)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)
	textQueries = append(textQueries, titleMatch)

	authorMatch := bleve.NewMatchQuery(queryText)
	authorMatch.SetField("author")
	authorMatch.SetBoost(2.0)
	textQueries = append(textQueries, authorMatch)

	ownerMatch := bleve.NewMatchQuery(queryText)
	ownerMatch.SetField("owner_name")
	textQueries = append(textQueries, ownerMatch)

	descMatch := bleve.NewMatchQuery(queryText)
	descMatch.SetField("description")
	descMatch.SetBoost(0.5)
	textQueries = append(textQueries, descMatch)

	fuzzyQuery := bleve.NewFuzzyQuery(queryText)
	fuzzyQuery.SetFuzziness(1)
	fuzzyQuery.SetField("title")
	fuzzyQuery.SetBoost(0.8)
	textQueries = append(textQueries, fuzzyQuery)

	// Prefix query for partial words (minimum 2 chars)
	if len(queryText) >= 2 {
		prefixQuery := bleve.NewPrefixQuery(strings.ToLower(queryText))
		prefixQuery.SetField("title")
		prefixQuery.SetBoost(0.5)
		textQueries = append(textQueries, prefixQuery)
	}

	return bleve.NewDisjunctionQuery(textQueries...)
}
