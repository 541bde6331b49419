package nodetype

import "github.com/ankek/terraform-provider-archdiagram/internal/scene"

func init() {
	mustRegisterModule("aws", "analytics", scene.CategoryAnalytics,
		"Athena", "Cloudsearch", "EMR", "ElasticsearchService", "Glue", "GlueCrawlers",
		"GlueDataCatalog", "Kinesis", "KinesisDataAnalytics", "KinesisDataFirehose",
		"KinesisDataStreams", "LakeFormation", "ManagedStreamingForKafka", "Quicksight", "Redshift")
	mustRegisterModule("aws", "compute", scene.CategoryCompute,
		"AppRunner", "AutoScaling", "Batch", "EC2", "EC2Instance", "ECR", "ECS", "EKS",
		"ElasticBeanstalk", "Fargate", "Lambda", "LambdaFunction", "Lightsail", "Outposts")
	mustRegisterModule("aws", "database", scene.CategoryDatabases,
		"Aurora", "AuroraInstance", "Database", "DocumentDB", "Dynamodb", "DynamodbTable",
		"ElastiCache", "Keyspaces", "Neptune", "QLDB", "RDS", "RDSInstance", "Redshift", "Timestream")
	mustRegisterModule("aws", "devtools", scene.CategoryDevOps,
		"Cloud9", "Codebuild", "Codecommit", "Codedeploy", "Codepipeline", "Codestar", "XRay")
	mustRegisterModule("aws", "integration", scene.CategoryIntegration,
		"Appsync", "Eventbridge", "MQ", "SimpleNotificationServiceSns", "SimpleQueueServiceSqs",
		"StepFunctions")
	mustRegisterModule("aws", "iot", scene.CategoryIoT,
		"IotAnalytics", "IotCore", "IotEvents", "IotGreengrass", "IotSitewise")
	mustRegisterModule("aws", "management", scene.CategoryManagement,
		"Cloudformation", "Cloudtrail", "Cloudwatch", "CloudwatchAlarm", "Config",
		"ControlTower", "Organizations", "SystemsManager", "TrustedAdvisor")
	mustRegisterModule("aws", "ml", scene.CategoryAI,
		"Bedrock", "Comprehend", "Lex", "Polly", "Rekognition", "Sagemaker", "Textract", "Transcribe", "Translate")
	mustRegisterModule("aws", "network", scene.CategoryNetwork,
		"APIGateway", "ALB", "CloudFront", "DirectConnect", "ELB", "ElbApplicationLoadBalancer",
		"ElbNetworkLoadBalancer", "GlobalAccelerator", "InternetGateway", "NATGateway",
		"PrivateSubnet", "PublicSubnet", "Route53", "TransitGateway", "VPC", "VPCPeering")
	mustRegisterModule("aws", "security", scene.CategorySecurity,
		"ACM", "Cognito", "Guardduty", "IAM", "IAMRole", "Inspector", "KMS", "Macie",
		"SecretsManager", "SecurityHub", "Shield", "WAF")
	mustRegisterModule("aws", "storage", scene.CategoryStorage,
		"Backup", "EFS", "ElasticBlockStoreEBS", "FSx", "S3", "S3Glacier", "StorageGateway")
}
