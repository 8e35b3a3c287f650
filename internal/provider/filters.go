package provider

import (
	"fmt"

	"github.com/intradash/adminkit/internal/common/dto"
)

// filterString renders a filter value as a string. Values arriving
// through JSON are strings or bools already; anything else is
// formatted with fmt.
func filterString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// usersQuery maps generic filters onto the users listing query.
// Unrecognized fields are dropped.
func usersQuery(pagination *Pagination, filters []Filter) dto.UsersListQuery {
	q := dto.UsersListQuery{Page: 1, Limit: 10}
	if pagination != nil {
		if pagination.Current > 0 {
			q.Page = pagination.Current
		}
		if pagination.PageSize > 0 {
			q.Limit = pagination.PageSize
		}
	}
	for _, f := range filters {
		switch f.Field {
		case "role":
			q.Role = dto.Role(filterString(f.Value))
		case "department", "departmentId":
			q.Department = filterString(f.Value)
		case "search", "q":
			q.Search = filterString(f.Value)
		case "isActive":
			q.IsActive = filterString(f.Value)
		}
	}
	return q
}

// departmentsQuery maps generic filters onto the departments listing
// query.
func departmentsQuery(pagination *Pagination, filters []Filter) dto.DepartmentsListQuery {
	q := dto.DepartmentsListQuery{Page: 1, Limit: 10}
	if pagination != nil {
		if pagination.Current > 0 {
			q.Page = pagination.Current
		}
		if pagination.PageSize > 0 {
			q.Limit = pagination.PageSize
		}
	}
	for _, f := range filters {
		switch f.Field {
		case "isActive":
			q.IsActive = filterString(f.Value)
		case "search", "name":
			q.Search = filterString(f.Value)
		case "sortBy":
			q.SortBy = filterString(f.Value)
		case "sortOrder":
			q.SortOrder = filterString(f.Value)
		}
	}
	return q
}

// cardsQuery maps generic filters onto the cards listing query.
func cardsQuery(pagination *Pagination, filters []Filter) dto.CardsListQuery {
	q := dto.CardsListQuery{Page: 1, Limit: 10}
	if pagination != nil {
		if pagination.Current > 0 {
			q.Page = pagination.Current
		}
		if pagination.PageSize > 0 {
			q.Limit = pagination.PageSize
		}
	}
	for _, f := range filters {
		switch f.Field {
		case "type":
			q.Type = dto.CardType(filterString(f.Value))
		case "isActive":
			q.IsActive = filterString(f.Value)
		case "sortBy":
			q.SortBy = filterString(f.Value)
		case "sortOrder":
			q.SortOrder = filterString(f.Value)
		}
	}
	return q
}

// wifiQuery maps generic filters onto the wifi listing query.
func wifiQuery(filters []Filter) dto.WifiListQuery {
	var q dto.WifiListQuery
	for _, f := range filters {
		switch f.Field {
		case "isActive":
			q.IsActive = filterString(f.Value)
		case "networkName", "search":
			q.NetworkName = filterString(f.Value)
		}
	}
	return q
}

// quickLinksQuery maps generic filters onto the quick links listing
// query.
func quickLinksQuery(filters []Filter) dto.QuickLinksListQuery {
	var q dto.QuickLinksListQuery
	for _, f := range filters {
		switch f.Field {
		case "category":
			q.Category = filterString(f.Value)
		case "isActive":
			q.IsActive = filterString(f.Value)
		}
	}
	return q
}

// filterValue returns the value of the first filter for field, or ""
// when absent. Used by the custom provider to pull routing identifiers
// such as userId out of the generic filter list.
func filterValue(filters []Filter, field string) string {
	for _, f := range filters {
		if f.Field == field {
			return filterString(f.Value)
		}
	}
	return ""
}

// metaString reads a string value from a meta map.
func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}
