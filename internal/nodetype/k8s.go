package nodetype

import "github.com/ankek/terraform-provider-archdiagram/internal/scene"

func init() {
	mustRegisterModule("k8s", "clusterconfig", scene.CategoryManagement,
		"HPA", "LimitRange", "Quota")
	mustRegisterModule("k8s", "compute", scene.CategoryCompute,
		"Cronjob", "DaemonSet", "Deployment", "Job", "Pod", "ReplicaSet", "StatefulSet")
	mustRegisterModule("k8s", "controlplane", scene.CategoryManagement,
		"API", "CCM", "ControllerManager", "Kubelet", "KubeProxy", "Scheduler")
	mustRegisterModule("k8s", "group", scene.CategoryDefault,
		"Namespace")
	mustRegisterModule("k8s", "infra", scene.CategoryCompute,
		"ETCD", "Master", "Node")
	mustRegisterModule("k8s", "network", scene.CategoryNetwork,
		"Endpoint", "Ingress", "NetworkPolicy", "Service")
	mustRegisterModule("k8s", "podconfig", scene.CategoryDefault,
		"ConfigMap", "Secret")
	mustRegisterModule("k8s", "rbac", scene.CategorySecurity,
		"ClusterRole", "ClusterRoleBinding", "Group", "Role", "RoleBinding", "ServiceAccount", "User")
	mustRegisterModule("k8s", "storage", scene.CategoryStorage,
		"PersistentVolume", "PersistentVolumeClaim", "StorageClass", "Volume")
	mustSetIcons("k8s", map[string]string{
		"infra.Master": "kubernetes",
	})
}
