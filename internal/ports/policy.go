package ports

import "pap/internal/types"

type LoaderPolicyPort interface {
	Infer(project types.ProjectDescriptor, requested string) (string, error)
	Check(project types.ProjectDescriptor, version types.VersionDescriptor, loader string) (string, error)
}
