package domain

import "time"

// Step is one scheduled transition, After time units past creation.
type Step struct {
	After int
	To    Status
}

// Progression is the scripted status timeline every order follows.
var Progression = []Step{
	{After: 5, To: StatusPreparing},
	{After: 15, To: StatusOutForDelivery},
	{After: 30, To: StatusDelivered},
}

// Due returns the instant step fires for an order created at createdAt.
func (s Step) Due(createdAt time.Time, unit time.Duration) time.Time {
	return createdAt.Add(time.Duration(s.After) * unit)
}
