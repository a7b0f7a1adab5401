package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown resource type category")

type Resource struct {
	ID       string
	Type     string // Microsoft.Web/sites
	Kind     string // app,linux
	Name     string
	Location string
}

type ResourceTypeCategory string

const (
	CategoryAppService ResourceTypeCategory = "appservice"
	CategoryAKS        ResourceTypeCategory = "aks"
	CategorySqlDb      ResourceTypeCategory = "sqldb"
)

// ResourcePredicate matches a resource type and, when Kinds is non-empty,
// one of the listed kinds.
type ResourcePredicate struct {
	Type  string
	Kinds []string
}

func (p ResourcePredicate) Matches(r Resource) bool {
	if r.Type != p.Type {
		return false
	}
	if len(p.Kinds) == 0 {
		return true
	}
	for _, kind := range p.Kinds {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

func (p ResourcePredicate) String() string {
	if len(p.Kinds) == 0 {
		return p.Type
	}
	return fmt.Sprintf("%s (kind: %s)", p.Type, strings.Join(p.Kinds, " | "))
}

// SupportedCategories maps every category to the predicates a resource must
// satisfy (any of them) to belong to it.
var SupportedCategories = map[ResourceTypeCategory][]ResourcePredicate{
	CategoryAppService: {
		{
			Type:  "Microsoft.Web/sites",
			Kinds: []string{"app", "app,linux", "app,linux,container", "app,container,windows"},
		},
	},
	CategoryAKS: {
		{Type: "Microsoft.ContainerService/managedClusters"},
	},
	CategorySqlDb: {
		{Type: "Microsoft.Sql/servers/databases"},
	},
}

func ParseResourceTypeCategory(value string) (ResourceTypeCategory, error) {
	category := ResourceTypeCategory(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := SupportedCategories[category]; !ok {
		return "", fmt.Errorf("%w: %q (supported: %s)",
			ErrUnknownCategory, value, strings.Join(CategoryNames(), ", "))
	}
	return category, nil
}

// CategoryNames returns the supported category names in sorted order.
func CategoryNames() []string {
	names := make([]string, 0, len(SupportedCategories))
	for category := range SupportedCategories {
		names = append(names, string(category))
	}
	sort.Strings(names)
	return names
}
