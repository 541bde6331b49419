package nodetype

import "github.com/ankek/terraform-provider-archdiagram/internal/scene"

func init() {
	mustRegisterModule("onprem", "analytics", scene.CategoryAnalytics,
		"Beam", "Databricks", "Flink", "Hadoop", "Hive", "Metabase", "Spark", "Superset", "Tableau")
	mustRegisterModule("onprem", "ci", scene.CategoryDevOps,
		"Circleci", "GithubActions", "GitlabCI", "Jenkins", "Teamcity", "TravisCI")
	mustRegisterModule("onprem", "compute", scene.CategoryCompute,
		"Nomad", "Server")
	mustRegisterModule("onprem", "container", scene.CategoryCompute,
		"Containerd", "Docker", "K3S", "Podman")
	mustRegisterModule("onprem", "database", scene.CategoryDatabases,
		"Cassandra", "Clickhouse", "Cockroachdb", "Couchdb", "Influxdb", "Mariadb",
		"Mongodb", "Mssql", "Mysql", "Neo4J", "Oracle", "Postgresql", "Scylla")
	mustRegisterModule("onprem", "inmemory", scene.CategoryDatabases,
		"Memcached", "Redis")
	mustRegisterModule("onprem", "logging", scene.CategoryMonitor,
		"Fluentbit", "Graylog", "Loki", "Rsyslog")
	mustRegisterModule("onprem", "monitoring", scene.CategoryMonitor,
		"Datadog", "Grafana", "Newrelic", "Prometheus", "Sentry", "Splunk", "Thanos")
	mustRegisterModule("onprem", "network", scene.CategoryNetwork,
		"Apache", "Consul", "Envoy", "Haproxy", "Istio", "Kong", "Linkerd", "Nginx", "Traefik")
	mustRegisterModule("onprem", "queue", scene.CategoryIntegration,
		"Activemq", "Celery", "Kafka", "Nats", "Rabbitmq", "Zeromq")
	mustRegisterModule("onprem", "security", scene.CategorySecurity,
		"Bitwarden", "Trivy", "Vault")
	mustRegisterModule("onprem", "storage", scene.CategoryStorage,
		"Ceph", "Glusterfs", "Portworx")
	mustRegisterModule("onprem", "workflow", scene.CategoryIntegration,
		"Airflow", "Digdag", "Kubeflow", "Nifi")
}
