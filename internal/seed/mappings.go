// Package seed provides the built-in company mapping catalog used before
// the first HubSpot refresh and as the shared test fixture. The tables mirror
// the calibration set the middleware was tuned against; a refresh from the
// live portal replaces them entirely.
package seed

import "github.com/johnwards/hublens/internal/catalog"

// Properties returns the default company property definitions.
func Properties() []catalog.PropertyDef {
	return []catalog.PropertyDef{
		{Name: "name", Label: "Company Name"},
		{Name: "domain", Label: "Website Domain"},
		{Name: "industry", Label: "Industry", Type: "enumeration"},
		{Name: "city", Label: "City"},
		{Name: "state", Label: "State"},
		{Name: "country", Label: "Country"},
		{Name: "numberofemployees", Label: "Number of Employees", Type: "number"},
		{Name: "annualrevenue", Label: "Annual Revenue", Type: "number"},
		{Name: "createdate", Label: "Created Date", Type: "datetime"},
		{Name: "hs_lastmodifieddate", Label: "Last Modified Date", Type: "datetime"},
		{Name: "hs_object_id", Label: "Company ID"},
		{Name: "description", Label: "Description"},
		{Name: "phone", Label: "Phone Number"},
		{Name: "website", Label: "Website"},
		{Name: "type", Label: "Company Type", Type: "enumeration"},
		{Name: "founded_year", Label: "Founded Year"},
		{Name: "twitterhandle", Label: "Twitter Handle"},
		{Name: "facebookfans", Label: "Facebook Fans", Type: "number"},
		{Name: "linkedin_company_page", Label: "LinkedIn Company Page"},
		{
			Name: "lifecyclestage", Label: "Lifecycle Stage", Type: "enumeration",
			Values: []catalog.ValueDef{
				{Raw: "subscriber", Display: "Subscriber"},
				{Raw: "lead", Display: "Lead"},
				{Raw: "marketingqualifiedlead", Display: "Marketing Qualified Lead"},
				{Raw: "salesqualifiedlead", Display: "Sales Qualified Lead"},
				{Raw: "opportunity", Display: "Opportunity"},
				{Raw: "customer", Display: "Customer"},
				{Raw: "evangelist", Display: "Evangelist"},
				{Raw: "other", Display: "Other"},
			},
		},
		{Name: "hubspot_owner_id", Label: "Owner ID", Type: "enumeration"},
		{Name: "hubspot_owner_assigneddate", Label: "Owner Assigned Date", Type: "datetime"},
		{Name: "web_technologies", Label: "Web Technologies"},
		{Name: "total_money_raised", Label: "Total Money Raised"},
		{Name: "recent_deal_amount", Label: "Recent Deal Amount", Type: "number"},
		{Name: "recent_deal_close_date", Label: "Recent Deal Close Date", Type: "date"},
		{Name: "num_associated_contacts", Label: "Number of Associated Contacts", Type: "number"},
		{Name: "num_associated_deals", Label: "Number of Associated Deals", Type: "number"},
		{Name: "timezone", Label: "Timezone"},
		{
			Name: "hs_lead_status", Label: "Lead Status", Type: "enumeration",
			Values: []catalog.ValueDef{
				{Raw: "NEW", Display: "New"},
				{Raw: "OPEN", Display: "Open"},
				{Raw: "IN_PROGRESS", Display: "In Progress"},
				{Raw: "CONNECTED", Display: "Connected"},
				{Raw: "BAD_TIMING", Display: "Bad Timing"},
				{Raw: "UNQUALIFIED", Display: "Unqualified"},
				{Raw: "ATTEMPTED_TO_CONTACT", Display: "Attempted to Contact"},
				{Raw: "NOT_QUALIFIED", Display: "Not Qualified"},
			},
		},
		{Name: "hs_analytics_source", Label: "Analytics Source"},
		{Name: "hs_analytics_first_touch_converting_campaign", Label: "First Touch Converting Campaign"},
		{Name: "hs_analytics_last_touch_converting_campaign", Label: "Last Touch Converting Campaign"},

		// Custom portal properties.
		{
			Name: "account_status", Label: "Account Status", Type: "enumeration",
			Values: []catalog.ValueDef{
				{Raw: "cancelled", Display: "Pending Cancellation"},
				{Raw: "active", Display: "Active"},
				{Raw: "inactive", Display: "Inactive"},
				{Raw: "trial", Display: "Trial"},
				{Raw: "suspended", Display: "Suspended"},
				{Raw: "pending", Display: "Pending Setup"},
			},
		},
		{Name: "subscription_type", Label: "Subscription Type", Type: "enumeration"},
		{Name: "contract_start_date", Label: "Contract Start Date", Type: "date"},
		{Name: "contract_end_date", Label: "Contract End Date", Type: "date"},
		{Name: "monthly_recurring_revenue", Label: "Monthly Recurring Revenue", Type: "number"},
		{
			Name: "customer_tier", Label: "Customer Tier", Type: "enumeration",
			Values: []catalog.ValueDef{
				{Raw: "enterprise", Display: "Enterprise"},
				{Raw: "professional", Display: "Professional"},
				{Raw: "standard", Display: "Standard"},
				{Raw: "basic", Display: "Basic"},
				{Raw: "startup", Display: "Startup"},
			},
		},
		{Name: "support_level", Label: "Support Level", Type: "enumeration"},
		{Name: "integration_status", Label: "Integration Status", Type: "enumeration"},
		{Name: "onboarding_status", Label: "Onboarding Status", Type: "enumeration"},
		{Name: "health_score", Label: "Health Score", Type: "number"},
		{Name: "last_activity_date", Label: "Last Activity Date", Type: "date"},
		{Name: "renewal_date", Label: "Renewal Date", Type: "date"},
		{
			Name: "churn_risk", Label: "Churn Risk", Type: "enumeration",
			Values: []catalog.ValueDef{
				{Raw: "high", Display: "High Risk"},
				{Raw: "medium", Display: "Medium Risk"},
				{Raw: "low", Display: "Low Risk"},
				{Raw: "none", Display: "No Risk"},
			},
		},
		{Name: "expansion_opportunity", Label: "Expansion Opportunity", Type: "enumeration"},
	}
}

// Catalog builds the default catalog. It panics on a build error since the
// seed tables are compiled in and must stay conflict-free.
func Catalog() *catalog.Catalog {
	c, err := catalog.New(Properties())
	if err != nil {
		panic("seed: invalid built-in mappings: " + err.Error())
	}
	return c
}
