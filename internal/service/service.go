package service

import (
	"context"

	"github.com/aps-extract/extract-service/internal/aps"
	"github.com/aps-extract/extract-service/internal/model"
	"github.com/aps-extract/extract-service/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// HierarchyClient is the paginated read access to the remote document
// hierarchy. Implemented by aps.Client.
type HierarchyClient interface {
	GetHubs(ctx context.Context, token string) ([]aps.Entry, error)
	GetProjects(ctx context.Context, token, hubID string) ([]aps.Entry, error)
	GetTopFolders(ctx context.Context, token, hubID, projectID string) ([]aps.Entry, error)
	GetFolderContents(ctx context.Context, token, projectID, folderID string, page int) (*aps.FolderContents, error)
}

// JobQueue carries extract jobs to the background workers. Implemented by
// mq.Conn.
type JobQueue interface {
	Publish(ctx context.Context, queue string, body []byte) error
	Consume(queue string) (<-chan amqp.Delivery, error)
}

// Notifier delivers the one-shot session-ready message to the subscriber
// registered under the connection id. Implemented by ws.Hub.
type Notifier interface {
	NotifySessionReady(connectionID, sessionID string, dataType model.DataType, guid string, parentFolderID *string)
}

type Extract interface {
	RequestInfo(ctx context.Context, req ExtractRequest, tokens *model.Tokens) error
	TakeSessionItems(ctx context.Context, sessionID string) ([]*model.Item, error)
	FindExtractions(ctx context.Context, guid string) ([]*model.Extraction, error)
	StartWorkers(ctx context.Context)
}

type Hierarchy interface {
	GetHubNodes(ctx context.Context, token string) ([]*TreeNode, error)
	GetProjectNodes(ctx context.Context, token, hubHref string) ([]*TreeNode, error)
}

type Service struct {
	logger *zap.Logger
	Extract
	Hierarchy
}

func New(logger *zap.Logger, repo *repository.Repository, queue JobQueue, client HierarchyClient, notifier Notifier) *Service {
	return &Service{
		logger:    logger,
		Extract:   NewExtractService(logger, repo, queue, client, notifier),
		Hierarchy: newHierarchyService(logger, client),
	}
}

func (s *Service) StartAllWorkers(ctx context.Context) {
	go s.Extract.StartWorkers(ctx)
	s.logger.Info("Started all workers")
}
