package icons

import (
	"sort"
	"strings"

	"github.com/ankek/terraform-provider-archdiagram/internal/scene"
)

// CatalogEntry maps an icon key to the SVG file it is cut from.
type CatalogEntry struct {
	// Pattern is an exact file name or a substring of one.
	Pattern  string
	Category scene.Category
}

// Catalog lists the icon keys prepared by Setup.
var Catalog = map[string]CatalogEntry{
	// Analytics
	"data-factory":     {"Data-Factories", scene.CategoryAnalytics},
	"synapse":          {"Azure-Synapse-Analytics", scene.CategoryAnalytics},
	"stream-analytics": {"Stream-Analytics-Jobs", scene.CategoryAnalytics},
	"databricks":       {"Azure-Databricks", scene.CategoryAnalytics},
	"power-bi":         {"Power-BI-Embedded", scene.CategoryAnalytics},
	"event-hubs":       {"Event-Hubs.svg", scene.CategoryAnalytics},
	"data-lake":        {"Data-Lake-Store-Gen1", scene.CategoryAnalytics},

	// AI
	"openai":             {"Azure-OpenAI", scene.CategoryAI},
	"cognitive-search":   {"Cognitive-Search", scene.CategoryAI},
	"cognitive-services": {"10162-icon-service-Cognitive-Services.svg", scene.CategoryAI},
	"machine-learning":   {"10166-icon-service-Machine-Learning.svg", scene.CategoryAI},
	"speech":             {"Speech-Services", scene.CategoryAI},
	"language":           {"02876-icon-service-Language.svg", scene.CategoryAI},

	// Databases
	"sql-database": {"SQL-Database.svg", scene.CategoryDatabases},
	"cosmos-db":    {"Azure-Cosmos-DB", scene.CategoryDatabases},
	"redis":        {"Cache-Redis", scene.CategoryDatabases},
	"purview":      {"Purview-Accounts", scene.CategoryDatabases},

	// Compute
	"app-service":  {"10035-icon-service-App-Services.svg", scene.CategoryCompute},
	"kubernetes":   {"Kubernetes-Services", scene.CategoryCompute},
	"function-app": {"Function-Apps", scene.CategoryCompute},

	// Identity and security
	"entra-id":      {"Entra-ID-Protection", scene.CategoryIdentity},
	"b2c":           {"Azure-AD-B2C", scene.CategoryIdentity},
	"entra-connect": {"02854-icon-service-Entra-Connect.svg", scene.CategoryIdentity},
	"key-vault":     {"Key-Vaults", scene.CategorySecurity},
	"defender":      {"Microsoft-Defender-for-Cloud", scene.CategorySecurity},

	// Networking and integration
	"cdn":            {"CDN-Profiles.svg", scene.CategoryNetworking},
	"api-management": {"API-Management-Services", scene.CategoryDevOps},
	"front-door":     {"Front-Door", scene.CategoryNetworking},
	"service-bus":    {"Azure-Service-Bus", scene.CategoryIntegration},
	"iot-hub":        {"IoT-Hub.svg", scene.CategoryIoT},

	// Storage
	"storage-account": {"Storage-Accounts.svg", scene.CategoryStorage},
	"data-share":      {"Data-Shares", scene.CategoryStorage},
	"blob":            {"Blob-Block", scene.CategoryStorage},

	// Monitoring and management
	"monitor":         {"00001-icon-service-Monitor.svg", scene.CategoryMonitor},
	"app-insights":    {"Application-Insights", scene.CategoryMonitor},
	"cost-management": {"Cost-Management.svg", scene.CategoryManagement},
	"policy":          {"Policy.svg", scene.CategoryManagement},
	"devops":          {"Azure-DevOps.svg", scene.CategoryDevOps},
}

// CatalogKeys returns the catalog keys sorted.
func CatalogKeys() []string {
	keys := make([]string, 0, len(Catalog))
	for k := range Catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CategoryOf returns the catalog category of key, or the default category.
func CategoryOf(key string) scene.Category {
	if e, ok := Catalog[key]; ok {
		return e.Category
	}
	return scene.CategoryDefault
}

var displayNames = map[string]string{
	"entra-id":        "Microsoft\nEntra ID",
	"key-vault":       "Azure Key\nVault",
	"monitor":         "Azure\nMonitor",
	"defender":        "Microsoft Defender\nfor Cloud",
	"devops":          "Azure DevOps\nand GitHub",
	"policy":          "Azure\nPolicy",
	"cost-management": "Cost\nManagement",
	"app-insights":    "Application\nInsights",
}

// DisplayName returns the caption shown under a platform bar icon. Lines are
// separated by "\n". Keys without a curated caption are title-cased.
func DisplayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	words := strings.Fields(strings.ReplaceAll(key, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
