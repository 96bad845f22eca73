package blogservice

import "github.com/microcosm-cc/bluemonday"

// bodyPolicy allows the formatting, links and images a post needs and drops scripts,
// event handler attributes and non http(s) URLs.
var bodyPolicy = bluemonday.UGCPolicy()

// sanitizeBody cleans admin supplied HTML before it is stored.
func sanitizeBody(body string) string {
	return bodyPolicy.Sanitize(body)
}
