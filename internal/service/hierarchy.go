package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// TreeNode is one jstree node of the hub/project browse tree.
type TreeNode struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Type     string `json:"type"`
	Children bool   `json:"children"`
}

type hierarchyService struct {
	logger *zap.Logger
	client HierarchyClient
}

func newHierarchyService(logger *zap.Logger, client HierarchyClient) Hierarchy {
	return &hierarchyService{
		logger: logger,
		client: client,
	}
}

func (s *hierarchyService) GetHubNodes(ctx context.Context, token string) ([]*TreeNode, error) {
	hubs, err := s.client.GetHubs(ctx, token)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get hubs: %s", err.Error())
		return nil, errInternal
	}

	nodes := make([]*TreeNode, 0, len(hubs))
	for _, hub := range hubs {
		nodeType := "hubs"
		switch hub.Attributes.Extension.Type {
		case "hubs:autodesk.core:Hub":
			nodeType = "hubs"
		case "hubs:autodesk.a360:PersonalHub":
			nodeType = "personalHub"
		case "hubs:autodesk.bim360:Account":
			nodeType = "bim360Hubs"
		}

		nodes = append(nodes, &TreeNode{
			ID:       hub.Links.Self.Href,
			Text:     hub.Attributes.Name,
			Type:     nodeType,
			Children: nodeType != "unsupported",
		})
	}

	return nodes, nil
}

// GetProjectNodes lists the projects of the hub identified by its self href,
// the id the browse tree hands back when a hub node is expanded.
func (s *hierarchyService) GetProjectNodes(ctx context.Context, token, hubHref string) ([]*TreeNode, error) {
	parts := strings.Split(hubHref, "/")
	hubID := parts[len(parts)-1]

	projects, err := s.client.GetProjects(ctx, token, hubID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get projects of hub(%s): %s", hubID, err.Error())
		return nil, errInternal
	}

	nodes := make([]*TreeNode, 0, len(projects))
	for _, project := range projects {
		nodeType := "projects"
		switch project.Attributes.Extension.Type {
		case "projects:autodesk.core:Project":
			nodeType = "a360projects"
		case "projects:autodesk.bim360:Project":
			if project.Attributes.Extension.Data.ProjectType == "ACC" {
				nodeType = "accprojects"
			} else {
				nodeType = "bim360projects"
			}
		}

		nodes = append(nodes, &TreeNode{
			ID:       project.Links.Self.Href,
			Text:     project.Attributes.Name,
			Type:     nodeType,
			Children: false,
		})
	}

	return nodes, nil
}
