package nodetype

import "github.com/ankek/terraform-provider-archdiagram/internal/scene"

func init() {
	mustRegisterModule("azure", "analytics", scene.CategoryAnalytics,
		"AnalysisServices", "DataExplorerClusters", "DataFactories", "DataLakeAnalytics",
		"DataLakeStoreGen1", "Databricks", "EventHubClusters", "EventHubs", "Hdinsightclusters",
		"LogAnalyticsWorkspaces", "PowerBiEmbedded", "StreamAnalyticsJobs", "SynapseAnalytics")
	mustRegisterModule("azure", "compute", scene.CategoryCompute,
		"AKS", "AppServices", "AutomanagedVM", "BatchAccounts", "CloudServices",
		"ContainerApps", "ContainerInstances", "ContainerRegistries", "FunctionApps",
		"KubernetesServices", "ServiceFabricClusters", "SpringCloud", "VM", "VMScaleSet")
	mustRegisterModule("azure", "database", scene.CategoryDatabases,
		"BlobStorage", "CacheForRedis", "CosmosDb", "DataLake", "DatabaseForMariadbServers",
		"DatabaseForMysqlServers", "DatabaseForPostgresqlServers", "ElasticDatabasePools",
		"ManagedDatabases", "SQLDatabases", "SQLDatawarehouse", "SQLManagedInstances", "SQLServers")
	mustRegisterModule("azure", "devops", scene.CategoryDevOps,
		"ApplicationInsights", "Artifacts", "Boards", "Devops", "DevtestLabs", "Pipelines", "Repos", "TestPlans")
	mustRegisterModule("azure", "identity", scene.CategoryIdentity,
		"ActiveDirectory", "ADB2C", "ADDomainServices", "ADIdentityProtection",
		"ADPrivilegedIdentityManagement", "ConditionalAccess", "EnterpriseApplications",
		"ManagedIdentities", "Users")
	mustRegisterModule("azure", "integration", scene.CategoryIntegration,
		"APIManagement", "AppConfiguration", "EventGridDomains", "EventGridTopics",
		"IntegrationAccounts", "LogicApps", "ServiceBus", "ServiceBusRelays")
	mustRegisterModule("azure", "iot", scene.CategoryIoT,
		"DigitalTwins", "IotCentralApplications", "IotHub", "IotHubSecurity", "TimeSeriesInsightsEnvironments")
	mustRegisterModule("azure", "ml", scene.CategoryAI,
		"AzureOpenai", "BotServices", "CognitiveSearch", "CognitiveServices",
		"MachineLearningServiceWorkspaces", "SpeechServices")
	mustRegisterModule("azure", "monitor", scene.CategoryMonitor,
		"ChangeAnalysis", "Logs", "Metrics", "Monitor")
	mustRegisterModule("azure", "network", scene.CategoryNetwork,
		"ApplicationGateway", "CDNProfiles", "DNSZones", "ExpressrouteCircuits", "Firewall",
		"FrontDoors", "LoadBalancers", "NetworkSecurityGroupsClassic", "PrivateEndpoint",
		"PublicIpAddresses", "Subnets", "TrafficManagerProfiles", "VirtualNetworkGateways",
		"VirtualNetworks", "VirtualWans")
	mustRegisterModule("azure", "security", scene.CategorySecurity,
		"ApplicationSecurityGroups", "KeyVaults", "SecurityCenter", "Sentinel")
	mustRegisterModule("azure", "storage", scene.CategoryStorage,
		"ArchiveStorage", "BlobStorage", "DataBox", "DataLakeStorage", "GeneralStorage",
		"NetappFiles", "QueuesStorage", "StorageAccounts", "TableStorage")
	mustRegisterModule("azure", "general", scene.CategoryManagement,
		"Costmanagement", "Managementgroups", "Policy", "Resourcegroups", "Subscriptions", "Tags")

	mustSetIcons("azure", map[string]string{
		"analytics.DataFactories":             "data-factory",
		"analytics.SynapseAnalytics":          "synapse",
		"analytics.StreamAnalyticsJobs":       "stream-analytics",
		"analytics.Databricks":                "databricks",
		"analytics.PowerBiEmbedded":           "power-bi",
		"analytics.EventHubs":                 "event-hubs",
		"analytics.DataLakeStoreGen1":         "data-lake",
		"compute.AppServices":                 "app-service",
		"compute.AKS":                         "kubernetes",
		"compute.KubernetesServices":          "kubernetes",
		"compute.FunctionApps":                "function-app",
		"database.SQLDatabases":               "sql-database",
		"database.CosmosDb":                   "cosmos-db",
		"database.CacheForRedis":              "redis",
		"database.BlobStorage":                "blob",
		"devops.ApplicationInsights":          "app-insights",
		"devops.Devops":                       "devops",
		"identity.ActiveDirectory":            "entra-id",
		"identity.ADB2C":                      "b2c",
		"integration.APIManagement":           "api-management",
		"integration.ServiceBus":              "service-bus",
		"iot.IotHub":                          "iot-hub",
		"ml.AzureOpenai":                      "openai",
		"ml.CognitiveSearch":                  "cognitive-search",
		"ml.CognitiveServices":                "cognitive-services",
		"ml.MachineLearningServiceWorkspaces": "machine-learning",
		"ml.SpeechServices":                   "speech",
		"monitor.Monitor":                     "monitor",
		"network.CDNProfiles":                 "cdn",
		"network.FrontDoors":                  "front-door",
		"security.KeyVaults":                  "key-vault",
		"security.SecurityCenter":             "defender",
		"storage.BlobStorage":                 "blob",
		"storage.StorageAccounts":             "storage-account",
		"general.Costmanagement":              "cost-management",
		"general.Policy":                      "policy",
	})
}
