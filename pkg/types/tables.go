package types

// Standard table names in the relational store.
const (
	LeadsTable           = "reliability_leads"
	EngagementsTable     = "engagements"
	DeliverableRunsTable = "deliverable_runs"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	LeadsTable,
	EngagementsTable,
	DeliverableRunsTable,
}
