package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pap/internal/ports"
	"pap/internal/types"
)

// LoaderPolicy decides which loader an install targets. Infer runs before
// any version is fetched; Check runs against the resolved version.
type LoaderPolicy struct{}

func NewLoaderPolicy() LoaderPolicy {
	return LoaderPolicy{}
}

// Infer returns the requested loader unchanged, or the project's only loader
// when none was requested.
func (p LoaderPolicy) Infer(project types.ProjectDescriptor, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		return requested, nil
	}
	switch len(project.Loaders) {
	case 0:
		return "", types.NewKindError(types.ErrKindLoaderNotOffered, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("project %s does not advertise any loader", project.DisplayName())))
	case 1:
		return project.Loaders[0], nil
	default:
		return "", types.NewKindError(types.ErrKindAmbiguousLoader, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("project %s supports more than one loader (%s), please specify which to target",
				project.DisplayName(), strings.Join(project.Loaders, ", "))))
	}
}

// Check verifies loader against the project, then against the version, and
// returns the registry spelling of the loader.
func (p LoaderPolicy) Check(project types.ProjectDescriptor, version types.VersionDescriptor, loader string) (string, error) {
	offered, ok := project.OffersLoader(loader)
	if !ok {
		return "", types.NewKindError(types.ErrKindLoaderNotOffered, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("project %s does not support %s loader", project.DisplayName(), loader)))
	}
	if !version.SupportsLoader(offered) {
		return "", types.NewKindError(types.ErrKindIncompatibleLoader, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("project version %s does not support loader %s", version.Label(), offered)))
	}
	return offered, nil
}

var _ ports.LoaderPolicyPort = LoaderPolicy{}
