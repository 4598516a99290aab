package analytics

// KPIStats are the month-to-date headline numbers with month-over-month deltas.
//
// FillRate is completed / finalized bookings. There is no slot-capacity
// model, so it measures attendance completion rather than calendar fill; the
// name is kept because dashboards already bind to it.
type KPIStats struct {
	RevenueMtd         int64 `json:"revenue_mtd"`
	RevenueMtdDelta    *int  `json:"revenue_mtd_delta"`
	BookingsMtd        int64 `json:"bookings_mtd"`
	BookingsMtdDelta   *int  `json:"bookings_mtd_delta"`
	NewClientsMtd      int64 `json:"new_clients_mtd"`
	NewClientsMtdDelta *int  `json:"new_clients_mtd_delta"`
	NoShowRate         int   `json:"no_show_rate"`
	NoShowRateDelta    *int  `json:"no_show_rate_delta"`
	FillRate           int   `json:"fill_rate"`
	FillRateDelta      *int  `json:"fill_rate_delta"`
	AvgTicket          int64 `json:"avg_ticket"`
	AvgTicketDelta     *int  `json:"avg_ticket_delta"`
	RevenueGoal        int64 `json:"revenue_goal"`
	GoalProgress       int   `json:"goal_progress"`
}

type periodKPIs struct {
	revenue    int64
	bookings   int64
	newClients int64
	noShowRate int
	fillRate   int
	avgTicket  int64
}

func derivePeriod(t PeriodTotals) periodKPIs {
	finalized := t.Finalized()
	return periodKPIs{
		revenue:    CentsToUnits(t.RevenueCents),
		bookings:   t.BookingCount,
		newClients: t.NewClients,
		noShowRate: Percent(t.NoShow, finalized),
		fillRate:   Percent(t.Completed, finalized),
		avgTicket:  AverageTicket(t.RevenueCents, t.PaidTransactions),
	}
}

// BuildKPIs compares the current period with the prior one. Deltas are taken
// on the presented (rounded) values. revenueGoal is in whole units.
func BuildKPIs(current, prior PeriodTotals, revenueGoal int64) KPIStats {
	cur := derivePeriod(current)
	prev := derivePeriod(prior)

	return KPIStats{
		RevenueMtd:         cur.revenue,
		RevenueMtdDelta:    PctDelta(cur.revenue, prev.revenue),
		BookingsMtd:        cur.bookings,
		BookingsMtdDelta:   PctDelta(cur.bookings, prev.bookings),
		NewClientsMtd:      cur.newClients,
		NewClientsMtdDelta: PctDelta(cur.newClients, prev.newClients),
		NoShowRate:         cur.noShowRate,
		NoShowRateDelta:    PctDelta(int64(cur.noShowRate), int64(prev.noShowRate)),
		FillRate:           cur.fillRate,
		FillRateDelta:      PctDelta(int64(cur.fillRate), int64(prev.fillRate)),
		AvgTicket:          cur.avgTicket,
		AvgTicketDelta:     PctDelta(cur.avgTicket, prev.avgTicket),
		RevenueGoal:        revenueGoal,
		GoalProgress:       Percent(cur.revenue, revenueGoal),
	}
}
