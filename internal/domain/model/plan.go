package model

import "sort"

// MembershipPlan is one purchasable plan from the static catalog. Plans are
// defined in configuration, looked up by ID and never persisted.
type MembershipPlan struct {
	ID         string
	Name       string
	Price      int64 // major currency units
	Duration   string
	ExpiryDays int
}

// AmountMinor is the plan price expressed in minor currency units, the
// representation payment gateways expect (100 minor units per major unit).
func (p *MembershipPlan) AmountMinor() int64 { return p.Price * 100 }

// PlanCatalog is the immutable plan lookup table, built once at startup and
// passed explicitly into the handlers that need it.
type PlanCatalog struct {
	byID  map[string]MembershipPlan
	order []string
}

func NewPlanCatalog(plans []MembershipPlan) *PlanCatalog {
	c := &PlanCatalog{byID: make(map[string]MembershipPlan, len(plans))}
	for _, p := range plans {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

// Find returns the plan for id, or false when the id is not in the catalog.
func (c *PlanCatalog) Find(id string) (MembershipPlan, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ExpiryDays maps a plan id to its membership duration in days. Unknown plan
// ids fall into the longest-duration branch, matching the webhook policy for
// plans added to the catalog but not to this table.
func (c *PlanCatalog) ExpiryDays(id string) int {
	if p, ok := c.byID[id]; ok {
		return p.ExpiryDays
	}
	return c.longestExpiryDays()
}

func (c *PlanCatalog) longestExpiryDays() int {
	max := 0
	for _, p := range c.byID {
		if p.ExpiryDays > max {
			max = p.ExpiryDays
		}
	}
	return max
}

// List returns the catalog in declaration order.
func (c *PlanCatalog) List() []MembershipPlan {
	out := make([]MembershipPlan, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// IDs returns the catalog's plan ids, sorted.
func (c *PlanCatalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
