package blueprint

import "sort"

var examples = map[string]func() *Document{
	"azure":      azureExample,
	"aws":        awsExample,
	"multicloud": multicloudExample,
}

// ExampleNames returns the built-in example names, sorted.
func ExampleNames() []string {
	names := make([]string, 0, len(examples))
	for n := range examples {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Example returns a fresh copy of a built-in example.
func Example(name string) (*Document, bool) {
	fn, ok := examples[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

func azureExample() *Document {
	return &Document{
		Title:     "Azure 3-Tier Web Application",
		Direction: "LR",
		Nodes: []Node{
			{ID: "users", Type: "azure.network.FrontDoors", Label: "Azure Front Door"},
			{ID: "ad", Type: "azure.identity.ActiveDirectory", Label: "Entra ID"},
		},
		Clusters: []Cluster{
			{
				Name:  "Production VNet",
				Nodes: []Node{{ID: "agw", Type: "azure.network.ApplicationGateway", Label: "App Gateway\n+ WAF"}},
				Children: []Cluster{
					{Name: "App Tier", Nodes: []Node{
						{ID: "web", Type: "azure.compute.AppServices", Label: "Web App"},
						{ID: "api", Type: "azure.compute.AppServices", Label: "API App"},
						{ID: "func", Type: "azure.compute.FunctionApps", Label: "Background\nJobs"},
					}},
					{Name: "Data Tier", Nodes: []Node{
						{ID: "sql", Type: "azure.database.SQLDatabases", Label: "Azure SQL"},
						{ID: "cosmos", Type: "azure.database.CosmosDb", Label: "Cosmos DB"},
						{ID: "cache", Type: "azure.database.CacheForRedis", Label: "Redis Cache"},
					}},
				},
			},
			{Name: "Shared Services", Nodes: []Node{
				{ID: "kv", Type: "azure.security.KeyVaults", Label: "Key Vault"},
				{ID: "blob", Type: "azure.storage.BlobStorage", Label: "Blob Storage"},
				{ID: "insights", Type: "azure.devops.ApplicationInsights", Label: "App Insights"},
			}},
		},
		Edges: []Edge{
			{From: "users", To: "agw", Label: "HTTPS"},
			{From: "agw", To: "web"},
			{From: "agw", To: "api"},
			{From: "ad", To: "agw", Label: "OAuth", Style: "dashed"},
			{From: "web", To: "cache"},
			{From: "api", To: "sql"},
			{From: "api", To: "cosmos"},
			{From: "func", To: "cosmos"},
			{From: "func", To: "blob"},
			{From: "web", To: "kv", Style: "dotted"},
			{From: "api", To: "kv", Style: "dotted"},
			{From: "web", To: "insights"},
			{From: "api", To: "insights"},
		},
	}
}

func awsExample() *Document {
	return &Document{
		Title:     "AWS 3-Tier Web Application",
		Direction: "LR",
		Nodes: []Node{
			{ID: "dns", Type: "aws.network.Route53", Label: "Route 53"},
			{ID: "cdn", Type: "aws.network.CloudFront", Label: "CloudFront"},
			{ID: "waf", Type: "aws.security.WAF", Label: "WAF"},
		},
		Clusters: []Cluster{
			{
				Name:  "VPC",
				Nodes: []Node{{ID: "alb", Type: "aws.network.ELB", Label: "Application\nLoad Balancer"}},
				Children: []Cluster{
					{Name: "App Tier (Private Subnets)", Nodes: []Node{
						{ID: "web", Type: "aws.compute.ECS", Label: "Web Service"},
						{ID: "api", Type: "aws.compute.ECS", Label: "API Service"},
						{ID: "workers", Type: "aws.compute.EC2", Label: "Worker\nInstances"},
					}},
					{Name: "Data Tier (Private Subnets)", Nodes: []Node{
						{ID: "rds", Type: "aws.database.RDS", Label: "RDS PostgreSQL\n(Multi-AZ)"},
						{ID: "cache", Type: "aws.database.ElastiCache", Label: "ElastiCache\nRedis"},
					}},
				},
			},
			{Name: "Storage & Monitoring", Nodes: []Node{
				{ID: "s3", Type: "aws.storage.S3", Label: "S3 Bucket"},
				{ID: "cw", Type: "aws.management.Cloudwatch", Label: "CloudWatch"},
				{ID: "iam", Type: "aws.security.IAMRole", Label: "IAM Roles"},
			}},
		},
		Edges: []Edge{
			{From: "dns", To: "cdn", Label: "DNS"},
			{From: "cdn", To: "waf"},
			{From: "waf", To: "alb"},
			{From: "alb", To: "web"},
			{From: "alb", To: "api"},
			{From: "web", To: "cache"},
			{From: "api", To: "rds"},
			{From: "api", To: "cache"},
			{From: "workers", To: "rds"},
			{From: "workers", To: "s3"},
			{From: "web", To: "cw", Style: "dotted"},
			{From: "api", To: "cw", Style: "dotted"},
			{From: "api", To: "iam", Style: "dotted"},
		},
	}
}

func multicloudExample() *Document {
	return &Document{
		Title:     "Multi-Cloud Active-Active Architecture",
		Direction: "TB",
		Nodes: []Node{
			{ID: "lb", Type: "onprem.network.Nginx", Label: "Global Load\nBalancer"},
		},
		Clusters: []Cluster{
			{Name: "AWS (us-east-1)", Nodes: []Node{
				{ID: "aws_cdn", Type: "aws.network.CloudFront", Label: "CloudFront"},
				{ID: "aws_app", Type: "aws.compute.ECS", Label: "API Service"},
				{ID: "aws_db", Type: "aws.database.RDS", Label: "RDS PostgreSQL"},
			}},
			{Name: "Azure (East US)", Nodes: []Node{
				{ID: "az_fd", Type: "azure.network.FrontDoors", Label: "Front Door"},
				{ID: "az_app", Type: "azure.compute.AppServices", Label: "App Service"},
				{ID: "az_db", Type: "azure.database.CosmosDb", Label: "Cosmos DB"},
			}},
			{Name: "GCP (us-central1)", Nodes: []Node{
				{ID: "gcp_cdn", Type: "gcp.network.CDN", Label: "Cloud CDN"},
				{ID: "gcp_app", Type: "gcp.compute.Run", Label: "Cloud Run"},
				{ID: "gcp_db", Type: "gcp.database.Spanner", Label: "Cloud Spanner"},
			}},
			{Name: "Observability (On-Prem)", Nodes: []Node{
				{ID: "prom", Type: "onprem.monitoring.Prometheus", Label: "Prometheus"},
				{ID: "graf", Type: "onprem.monitoring.Grafana", Label: "Grafana"},
			}},
		},
		Edges: []Edge{
			{From: "aws_cdn", To: "aws_app"},
			{From: "aws_app", To: "aws_db"},
			{From: "az_fd", To: "az_app"},
			{From: "az_app", To: "az_db"},
			{From: "gcp_cdn", To: "gcp_app"},
			{From: "gcp_app", To: "gcp_db"},
			{From: "prom", To: "graf"},
			{From: "lb", To: "aws_cdn", Label: "Region 1"},
			{From: "lb", To: "az_fd", Label: "Region 2"},
			{From: "lb", To: "gcp_cdn", Label: "Region 3"},
			{From: "aws_db", To: "az_db", Label: "replication", Style: "dashed", Color: "gray"},
			{From: "az_db", To: "gcp_db", Label: "replication", Style: "dashed", Color: "gray"},
			{From: "aws_app", To: "prom", Style: "dotted"},
			{From: "az_app", To: "prom", Style: "dotted"},
			{From: "gcp_app", To: "prom", Style: "dotted"},
		},
	}
}
