package metrics

import "strings"

// Prefix namespaces every metric exported by the service.
const Prefix = "msbuild_expert_"

// MetricName prefixes name unless it already carries the prefix.
func MetricName(name string) string {
	if strings.HasPrefix(name, Prefix) {
		return name
	}
	return Prefix + name
}

// MetricNameWithSubsystem joins subsystem and name under the prefix.
func MetricNameWithSubsystem(subsystem, name string) string {
	subsystem = strings.Trim(subsystem, "_")
	if subsystem == "" {
		return MetricName(name)
	}
	if name == "" {
		return Prefix + subsystem
	}
	return Prefix + subsystem + "_" + name
}
