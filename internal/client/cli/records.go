package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/adminpanel/internal/client/dataprovider"
)

// List prints one page of a resource.
func (a *App) List(ctx context.Context, args []string) error {
	positional, assignments := splitAssignments(args)
	if len(positional) < 1 || len(positional) > 5 {
		return errUsage
	}

	params, err := listParams(positional[1:])
	if err != nil {
		return err
	}
	for _, p := range assignments {
		k, v, _ := strings.Cut(p, "=")
		if params.Filter == nil {
			params.Filter = map[string]string{}
		}
		params.Filter[k] = v
	}

	res, err := a.data.GetList(ctx, positional[0], params)
	if err != nil {
		return a.checkError(ctx, err)
	}
	return a.printList(res)
}

// Get prints one record, or several when more than one id is given.
func (a *App) Get(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	ids, err := parseIDs(args[1:])
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		rec, err := a.data.GetOne(ctx, args[0], ids[0])
		if err != nil {
			return a.checkError(ctx, err)
		}
		return a.printRecords(rec)
	}

	recs, err := a.data.GetMany(ctx, args[0], ids)
	if err != nil {
		return a.checkError(ctx, err)
	}
	return a.printRecords(recs...)
}

// Refs prints the records of a resource whose target field equals id.
func (a *App) Refs(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	id, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid id %q", args[2])
	}

	res, err := a.data.GetManyReference(ctx, args[0], args[1], id, dataprovider.ListParams{})
	if err != nil {
		return a.checkError(ctx, err)
	}
	return a.printList(res)
}

func (a *App) Create(ctx context.Context, args []string) error {
	positional, assignments := splitAssignments(args)
	if len(positional) != 1 || len(assignments) == 0 {
		return errUsage
	}
	body, err := parseAssignments(assignments)
	if err != nil {
		return err
	}

	rec, err := a.data.Create(ctx, positional[0], body)
	if err != nil {
		return a.checkError(ctx, err)
	}
	return a.printRecords(rec)
}

// Update merges the given fields into one record, or into each of several.
func (a *App) Update(ctx context.Context, args []string) error {
	positional, assignments := splitAssignments(args)
	if len(positional) < 2 || len(assignments) == 0 {
		return errUsage
	}
	ids, err := parseIDs(positional[1:])
	if err != nil {
		return err
	}
	body, err := parseAssignments(assignments)
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		rec, err := a.data.Update(ctx, positional[0], ids[0], body)
		if err != nil {
			return a.checkError(ctx, err)
		}
		return a.printRecords(rec)
	}

	done, err := a.data.UpdateMany(ctx, positional[0], ids, body)
	fmt.Fprintf(a.out, "Updated: %v\n", done)
	return a.checkError(ctx, err)
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	ids, err := parseIDs(args[1:])
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		rec, err := a.data.Delete(ctx, args[0], ids[0])
		if err != nil {
			return a.checkError(ctx, err)
		}
		fmt.Fprintf(a.out, "Deleted: [%d]\n", rec.ID())
		return nil
	}

	done, err := a.data.DeleteMany(ctx, args[0], ids)
	fmt.Fprintf(a.out, "Deleted: %v\n", done)
	return a.checkError(ctx, err)
}

// listParams reads the optional [page] [perPage] [field] [order] arguments.
func listParams(args []string) (dataprovider.ListParams, error) {
	var p dataprovider.ListParams
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return p, fmt.Errorf("invalid page %q", args[0])
		}
		p.Pagination.Page = n
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return p, fmt.Errorf("invalid perPage %q", args[1])
		}
		p.Pagination.PerPage = n
	}
	if len(args) > 2 {
		p.Sort.Field = args[2]
	}
	if len(args) > 3 {
		order := strings.ToUpper(args[3])
		if order != "ASC" && order != "DESC" {
			return p, fmt.Errorf("invalid order %q", args[3])
		}
		p.Sort.Order = order
	}
	return p, nil
}

func (a *App) printList(res *dataprovider.ListResult) error {
	if err := a.printRecords(res.Data...); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d of %d\n", len(res.Data), res.Total)
	return nil
}

func (a *App) printRecords(recs ...dataprovider.Record) error {
	for _, r := range recs {
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, string(b))
	}
	return nil
}
