// Package dataprovider is the client-side adapter for the admin REST API. It
// turns page/sort/filter requests into the API's query parameters and reads
// totals back from the Content-Range header.
package dataprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/adminpanel/internal/client/client"
	"github.com/dmitrijs2005/adminpanel/internal/common"
	"golang.org/x/sync/errgroup"
)

// Defaults applied to list requests that leave them out.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	DefaultSort    = "id"
	DefaultOrder   = "ASC"
)

// maxInFlight bounds the concurrent calls of UpdateMany and DeleteMany.
const maxInFlight = 8

// Record is one resource record as decoded from JSON.
type Record map[string]any

// ID returns the numeric id of the record, or 0.
func (r Record) ID() int {
	switch v := r["id"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

type Pagination struct {
	Page    int
	PerPage int
}

type Sort struct {
	Field string
	Order string
}

// ListParams describes one page of a list read. Filter values are sent as
// equality filters.
type ListParams struct {
	Pagination Pagination
	Sort       Sort
	Filter     map[string]string
}

type ListResult struct {
	Data  []Record
	Total int
}

type Provider struct {
	c client.Doer
}

func New(c client.Doer) *Provider {
	return &Provider{c: c}
}

func (p *Provider) GetList(ctx context.Context, resource string, params ListParams) (*ListResult, error) {
	return p.list(ctx, resource, listQuery(params))
}

func (p *Provider) GetOne(ctx context.Context, resource string, id int) (Record, error) {
	resp, err := p.c.Do(ctx, client.Request{
		Method: http.MethodGet,
		Path:   resource,
		Query:  idQuery(id),
	})
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp)
}

// GetMany fetches the records with the given ids in one call.
func (p *Provider) GetMany(ctx context.Context, resource string, ids []int) ([]Record, error) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	resp, err := p.c.Do(ctx, client.Request{
		Method: http.MethodGet,
		Path:   resource,
		Query:  url.Values{"id": {strings.Join(parts, ",")}},
	})
	if err != nil {
		return nil, err
	}

	var out []Record
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetManyReference lists records whose target field equals id, e.g. the
// posts of one user.
func (p *Provider) GetManyReference(ctx context.Context, resource, target string, id int, params ListParams) (*ListResult, error) {
	q := listQuery(params)
	q.Set(target, strconv.Itoa(id))
	return p.list(ctx, resource, q)
}

func (p *Provider) Create(ctx context.Context, resource string, data Record) (Record, error) {
	resp, err := p.c.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   resource,
		Body:   data,
	})
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp)
}

func (p *Provider) Update(ctx context.Context, resource string, id int, data Record) (Record, error) {
	resp, err := p.c.Do(ctx, client.Request{
		Method: http.MethodPut,
		Path:   resource,
		Query:  idQuery(id),
		Body:   data,
	})
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp)
}

func (p *Provider) Delete(ctx context.Context, resource string, id int) (Record, error) {
	resp, err := p.c.Do(ctx, client.Request{
		Method: http.MethodDelete,
		Path:   resource,
		Query:  idQuery(id),
	})
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp)
}

// UpdateMany applies data to every id with one call per record. The batch is
// not atomic: it returns the ids that were updated together with the joined
// errors of the calls that failed.
func (p *Provider) UpdateMany(ctx context.Context, resource string, ids []int, data Record) ([]int, error) {
	return p.fanOut(ctx, ids, func(ctx context.Context, id int) (Record, error) {
		return p.Update(ctx, resource, id, data)
	})
}

// DeleteMany deletes every id with one call per record. Like UpdateMany it
// is not atomic.
func (p *Provider) DeleteMany(ctx context.Context, resource string, ids []int) ([]int, error) {
	return p.fanOut(ctx, ids, func(ctx context.Context, id int) (Record, error) {
		return p.Delete(ctx, resource, id)
	})
}

func (p *Provider) fanOut(ctx context.Context, ids []int, call func(context.Context, int) (Record, error)) ([]int, error) {
	results := make([]int, len(ids))
	ok := make([]bool, len(ids))

	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	g.SetLimit(maxInFlight)

	for i, id := range ids {
		g.Go(func() error {
			rec, err := call(ctx, id)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("id %d: %w", id, err))
				mu.Unlock()
				return nil
			}
			results[i] = rec.ID()
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	done := make([]int, 0, len(ids))
	for i := range ids {
		if ok[i] {
			done = append(done, results[i])
		}
	}
	return done, errors.Join(errs...)
}

func (p *Provider) list(ctx context.Context, resource string, q url.Values) (*ListResult, error) {
	resp, err := p.c.Do(ctx, client.Request{
		Method: http.MethodGet,
		Path:   resource,
		Query:  q,
	})
	if err != nil {
		return nil, err
	}

	var data []Record
	if err := resp.Decode(&data); err != nil {
		return nil, err
	}

	return &ListResult{
		Data:  data,
		Total: totalOf(resp.Header.Get(common.ContentRangeHeaderName), len(data)),
	}, nil
}

func listQuery(params ListParams) url.Values {
	page := params.Pagination.Page
	if page <= 0 {
		page = DefaultPage
	}
	perPage := params.Pagination.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	field := params.Sort.Field
	if field == "" {
		field = DefaultSort
	}
	order := strings.ToUpper(params.Sort.Order)
	if order == "" {
		order = DefaultOrder
	}

	q := url.Values{}
	for k, v := range params.Filter {
		q.Set(k, v)
	}
	q.Set("_sort", field)
	q.Set("_order", order)
	q.Set("_start", strconv.Itoa((page-1)*perPage))
	q.Set("_end", strconv.Itoa(page*perPage))
	return q
}

func idQuery(id int) url.Values {
	return url.Values{"id": {strconv.Itoa(id)}}
}

// totalOf reads the total after the last "/" of a Content-Range value,
// falling back to n when the header is missing or malformed.
func totalOf(contentRange string, n int) int {
	i := strings.LastIndex(contentRange, "/")
	if i < 0 {
		return n
	}
	total, err := strconv.Atoi(strings.TrimSpace(contentRange[i+1:]))
	if err != nil {
		return n
	}
	return total
}

func decodeRecord(resp *client.Response) (Record, error) {
	var rec Record
	if err := resp.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}
