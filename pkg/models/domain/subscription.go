package domain

import "fmt"

type Subscription struct {
	ID       string
	Name     string
	Position int // 1-based position in the input batch
}

type SubscriptionSummary struct {
	Subscription Subscription
	Enabled      int
	Total        int
	Failed       int // resources whose diagnostic settings could not be fetched
	NoResources  bool
}

func (s SubscriptionSummary) String() string {
	return fmt.Sprintf("%s: %d/%d", s.Subscription.Name, s.Enabled, s.Total)
}
