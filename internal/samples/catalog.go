package samples

import "github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"

type entry struct {
	name        string
	description string
}

var customersTypes = []entry{
	{"Client", "Default type for standard clients"},
	{"Distributor", "Resells our products and services"},
	{"Partner", "Works closely with us"},
	{"Reseller", "Authorized to sell our products"},
	{"VIP", "High priority customer"},
	{"Internal", "Internal use only"},
	{"Government", "Public administration customer"},
	{"Education", "Academic institution"},
	{"Non-Profit", "Non-commercial entity"},
	{"Other", "Other unspecified type"},
}

var leadsStatus = []entry{
	{"New", "Lead just created"},
	{"Contacted", "Initial contact made"},
	{"Qualified", "Qualified lead"},
	{"Proposal Sent", "Proposal has been delivered"},
	{"Negotiation", "Under negotiation"},
	{"Won", "Deal closed successfully"},
	{"Lost", "Lead lost"},
	{"Archived", "No longer active"},
	{"Recycled", "Revived from previous loss"},
	{"Unreachable", "Could not be contacted"},
}

var quotesStatus = []entry{
	{"Draft", "Quote in preparation"},
	{"Sent", "Quote sent to customer"},
	{"Accepted", "Customer accepted the quote"},
	{"Rejected", "Customer rejected the quote"},
	{"Expired", "Quote validity expired"},
	{"Cancelled", "Manually cancelled"},
	{"Pending", "Awaiting response"},
	{"Reviewed", "Reviewed by manager"},
	{"Converted", "Converted to invoice"},
	{"Closed", "Closed without result"},
}

var employeesTypes = []entry{
	{"Internal", "Employee on company payroll"},
	{"Freelance", "Independent contractor"},
	{"External", "Works for a third-party provider"},
	{"Temporary", "Short-term contract employee"},
	{"Intern", "Student or junior under training"},
	{"Part-time", "Limited hours per week"},
	{"Full-time", "Standard full-time employee"},
	{"Consultant", "Advisor or expert hired for projects"},
	{"Seasonal", "Hired during peak periods"},
	{"Other", "Other type of employee"},
}

var purchaseStatus = []entry{
	{"Draft", "Purchase not yet confirmed"},
	{"Ordered", "Order has been placed with supplier"},
	{"Received", "Goods or services have been received"},
	{"Invoiced", "Invoice has been received"},
	{"Paid", "Payment completed"},
	{"Partially Paid", "Partial payment made"},
	{"Cancelled", "Order was cancelled"},
	{"Returned", "Goods returned to supplier"},
	{"Archived", "Marked for historical reference"},
	{"Other", "Other status"},
}

var suppliersTypes = []entry{
	{"Manufacturer", "Produces goods directly"},
	{"Wholesaler", "Sells large quantities to resellers"},
	{"Distributor", "Distributes products regionally"},
	{"Transporter", "Logistics and shipping provider"},
	{"Freelancer", "Individual supplier or technician"},
	{"Agency", "Acts on behalf of other suppliers"},
	{"Service Provider", "Offers support or maintenance"},
	{"Partner", "Strategic or long-term provider"},
	{"Government", "Public sector entity"},
	{"Other", "Unspecified type of supplier"},
}

var productsCategories = []entry{
	{"Hardware", "Physical devices and equipment"},
	{"Software", "Applications and systems"},
	{"Services", "Technical or support services"},
	{"Licenses", "Software or intellectual property licenses"},
	{"Training", "Courses and educational content"},
	{"Maintenance", "Post-sale repair or update services"},
	{"Cloud", "Hosted online services"},
	{"Accessories", "Complementary items"},
	{"Consumables", "Items that are used and replaced"},
	{"Other", "Unclassified category"},
}

var productsTypes = []entry{
	{"Good", "Physical product"},
	{"Service", "Service provided to customer"},
	{"License", "Software or intellectual license"},
	{"Subscription", "Recurring billed item"},
	{"Kit", "Grouped set of products"},
	{"Digital", "Downloadable or virtual product"},
	{"Maintenance", "Post-sale service"},
	{"Training", "Course or educational service"},
	{"Consulting", "Professional consulting"},
	{"Other", "Miscellaneous"},
}

var invoicesStatus = []entry{
	{"Draft", "Invoice not finalized"},
	{"Issued", "Invoice has been issued"},
	{"Partially Paid", "Invoice partially paid"},
	{"Paid", "Invoice fully paid"},
	{"Overdue", "Payment is overdue"},
	{"Cancelled", "Invoice was cancelled"},
	{"Disputed", "Client raised an issue"},
	{"Refunded", "Invoice was refunded"},
	{"Archived", "Archived for historical reference"},
	{"Closed", "Invoice closed with no further action"},
}

// catalogGenerator builds a fixed lookup table of active name/description
// rows numbered from 1.
func catalogGenerator(group, table string, entries []entry) Generator {
	return Generator{
		Name:   table,
		Group:  group,
		Tables: []string{table},
		Build: func(env *Env) ([]*sqlfile.Table, error) {
			t := sqlfile.NewTable(table, "id", "active", "name", "description")
			for i, e := range entries {
				if err := t.Append(i+1, 1, e.name, e.description); err != nil {
					return nil, err
				}
			}
			return []*sqlfile.Table{t}, nil
		},
	}
}
