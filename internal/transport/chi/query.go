package chi

import (
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/companydex/internal/domain/search/params"
)

// bindListParams binds the listing query (form style, exploded) into params.Params.
// Binding never fails: a repeated scalar degrades to its first value.
func bindListParams(q url.Values) params.Params {
	var p params.Params
	p.Search = bindString(q, "search")
	p.Name = bindString(q, "name")
	p.Industry = bindString(q, "industry")
	p.Location = bindString(q, "location")
	p.Tag = bindString(q, "tag")
	p.SizeMin = bindString(q, "sizeMin")
	p.SizeMax = bindString(q, "sizeMax")
	p.FoundedFrom = bindString(q, "foundedFrom")
	p.FoundedTo = bindString(q, "foundedTo")
	p.Sort = bindString(q, "sort")
	p.Page = bindString(q, "page")
	p.Limit = bindString(q, "limit")

	var tags *[]string
	if err := runtime.BindQueryParameter("form", true, false, "tags", q, &tags); err != nil || tags == nil {
		p.Tags = q["tags"]
	} else {
		p.Tags = *tags
	}
	return p
}

func bindString(q url.Values, name string) *string {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		if _, ok := q[name]; !ok {
			return nil
		}
		first := q.Get(name)
		return &first
	}
	return v
}
