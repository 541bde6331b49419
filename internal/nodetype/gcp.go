package nodetype

import "github.com/ankek/terraform-provider-archdiagram/internal/scene"

func init() {
	mustRegisterModule("gcp", "analytics", scene.CategoryAnalytics,
		"Bigquery", "Composer", "DataCatalog", "DataFusion", "Dataflow", "Datalab",
		"Dataprep", "Dataproc", "Looker", "Pubsub")
	mustRegisterModule("gcp", "compute", scene.CategoryCompute,
		"AppEngine", "ComputeEngine", "Functions", "GKE", "GPU", "KubernetesEngine", "Run")
	mustRegisterModule("gcp", "database", scene.CategoryDatabases,
		"Bigtable", "Datastore", "Firestore", "Memorystore", "Spanner", "SQL")
	mustRegisterModule("gcp", "devtools", scene.CategoryDevOps,
		"Build", "ContainerRegistry", "GCR", "Scheduler", "SourceRepositories", "Tasks")
	mustRegisterModule("gcp", "ml", scene.CategoryAI,
		"AIPlatform", "AutoML", "NaturalLanguageAPI", "SpeechToText", "TranslationAPI",
		"VertexAI", "VisionAPI")
	mustRegisterModule("gcp", "network", scene.CategoryNetwork,
		"Armor", "CDN", "DNS", "ExternalIpAddresses", "FirewallRules", "LoadBalancing",
		"NAT", "Router", "VirtualPrivateCloud", "VPN")
	mustRegisterModule("gcp", "operations", scene.CategoryMonitor,
		"Logging", "Monitoring")
	mustRegisterModule("gcp", "security", scene.CategorySecurity,
		"Iam", "IAP", "KeyManagementService", "SecretManager", "SecurityCommandCenter")
	mustRegisterModule("gcp", "storage", scene.CategoryStorage,
		"Filestore", "GCS", "PersistentDisk", "Storage")
}
