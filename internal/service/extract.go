package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/aps-extract/extract-service/internal/aps"
	"github.com/aps-extract/extract-service/internal/model"
	"github.com/aps-extract/extract-service/internal/mq"
	"github.com/aps-extract/extract-service/internal/repository"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type extractService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	queue    JobQueue
	client   HierarchyClient
	notifier Notifier
}

func NewExtractService(logger *zap.Logger, repo *repository.Repository, queue JobQueue, client HierarchyClient, notifier Notifier) Extract {
	return &extractService{
		logger:   logger,
		repo:     repo,
		queue:    queue,
		client:   client,
		notifier: notifier,
	}
}

// ExtractRequest is one crawl request for a single listing: a project's top
// folders, or one folder's full paginated contents.
type ExtractRequest struct {
	ConnectionID string
	HubID        string
	ProjectID    string
	FolderID     string
	DataType     model.DataType
	Guid         string
}

type extractJob struct {
	ConnectionID string         `json:"connectionId"`
	HubID        string         `json:"hubId"`
	ProjectID    string         `json:"projectId"`
	FolderID     string         `json:"folderId"`
	DataType     model.DataType `json:"dataType"`
	Guid         string         `json:"guid"`
	Token        string         `json:"token"`
}

// RequestInfo acknowledges immediately; the fetch/aggregate/store/notify
// sequence runs on the workers consuming the extract queue. A failed enqueue
// is retried once, then dropped silently — the client detects the missing
// session via its own timeout.
func (s *extractService) RequestInfo(ctx context.Context, req ExtractRequest, tokens *model.Tokens) error {
	switch req.DataType {
	case model.DataTypeTopFolders:
	case model.DataTypeFolder:
		if req.FolderID == "" {
			return errMissingFolderID
		}
	default:
		return errUnknownDataType
	}

	job := extractJob{
		ConnectionID: req.ConnectionID,
		HubID:        req.HubID,
		ProjectID:    req.ProjectID,
		FolderID:     req.FolderID,
		DataType:     req.DataType,
		Guid:         req.Guid,
		Token:        tokens.InternalToken,
	}

	jobJSON, err := json.Marshal(job)
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal extract job: %s", err.Error())
		return errInternal
	}

	if err := s.queue.Publish(ctx, mq.EXTRACT_JOBS_QUEUE, jobJSON); err != nil {
		s.logger.Sugar().Errorf("failed to enqueue extract job for connection(%s), retrying once: %s", req.ConnectionID, err.Error())
		if err := s.queue.Publish(ctx, mq.EXTRACT_JOBS_QUEUE, jobJSON); err != nil {
			s.logger.Sugar().Errorf("failed to enqueue extract job for connection(%s), dropping: %s", req.ConnectionID, err.Error())
		}
	}

	return nil
}

func (s *extractService) TakeSessionItems(ctx context.Context, sessionID string) ([]*model.Item, error) {
	session, err := s.repo.Sessions.Take(ctx, sessionID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to take session(%s): %s", sessionID, err.Error())
		return nil, errInternal
	}
	if session == nil {
		// already consumed or never existed; both are fine
		return []*model.Item{}, nil
	}

	return session.Items, nil
}

func (s *extractService) FindExtractions(ctx context.Context, guid string) ([]*model.Extraction, error) {
	extractions, err := s.repo.Extractions.FindByGuid(ctx, guid)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find extractions for guid(%s): %s", guid, err.Error())
		return nil, errInternal
	}

	return extractions, nil
}

// StartWorkers launches the consumer pool. Jobs are independent and complete
// in any order; results are keyed by session id, never by arrival sequence.
func (s *extractService) StartWorkers(ctx context.Context) {
	msgs, err := s.queue.Consume(mq.EXTRACT_JOBS_QUEUE)
	if err != nil {
		panic(err)
	}

	workers := viper.GetInt("workers.count")
	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		go func() {
			for msg := range msgs {
				var job extractJob
				if err := json.Unmarshal(msg.Body, &job); err != nil {
					s.logger.Sugar().Errorf("failed to unmarshal extract job: %s", err.Error())
					msg.Ack(false)
					continue
				}

				s.gatherData(ctx, job)

				// fetch failures are not requeued: the client's timeout
				// owns that case
				msg.Ack(false)
			}
		}()
	}
}

func (s *extractService) gatherData(ctx context.Context, job extractJob) {
	switch job.DataType {
	case model.DataTypeTopFolders:
		s.gatherTopFolders(ctx, job)
	case model.DataTypeFolder:
		s.gatherFolder(ctx, job)
	default:
		s.logger.Sugar().Errorf("unknown data type %q in extract job for connection(%s)", job.DataType, job.ConnectionID)
	}
}

func (s *extractService) gatherTopFolders(ctx context.Context, job extractJob) {
	entries, err := s.client.GetTopFolders(ctx, job.Token, job.HubID, job.ProjectID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get top folders of project(%s): %s", job.ProjectID, err.Error())
		return
	}

	items := make([]*model.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Normalize(e))
	}

	s.storeAndNotify(ctx, job, items, nil)
}

func (s *extractService) gatherFolder(ctx context.Context, job extractJob) {
	items, err := s.aggregateFolder(ctx, job.Token, job.ProjectID, job.FolderID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get contents of folder(%s): %s", job.FolderID, err.Error())
		return
	}

	parentFolderID := job.FolderID
	s.storeAndNotify(ctx, job, items, &parentFolderID)
}

// aggregateFolder drains every page of one folder listing in page order. A
// failing page aborts the remaining pagination but keeps what was collected,
// so the folder degrades to partial results instead of erroring the session.
func (s *extractService) aggregateFolder(ctx context.Context, token, projectID, folderID string) ([]*model.Item, error) {
	contents, err := s.client.GetFolderContents(ctx, token, projectID, folderID, 0)
	if err != nil {
		return nil, err
	}

	items := AggregatePage(contents)

	page := 0
	for contents.Links.Next != nil {
		page++
		contents, err = s.client.GetFolderContents(ctx, token, projectID, folderID, page)
		if err != nil {
			s.logger.Sugar().Errorf("failed to fetch page %d of folder(%s), keeping %d items: %s", page, folderID, len(items), err.Error())
			break
		}
		items = append(items, AggregatePage(contents)...)
	}

	return items, nil
}

// AggregatePage normalizes every record of one listing page, enriching file
// items with their latest version from the side-list. One item's failed
// enrichment never aborts the page.
func AggregatePage(contents *aps.FolderContents) []*model.Item {
	items := make([]*model.Item, 0, len(contents.Data))
	for _, e := range contents.Data {
		item := Normalize(e)
		if item.Type == model.ItemTypeFile {
			version, size := resolveLatestVersion(contents.Included, item.ID)
			item.Version = &version
			item.Size = &size
		}
		items = append(items, item)
	}

	return items
}

// resolveLatestVersion scans the version side-list for records belonging to
// itemID and picks the highest version number. No match yields empty strings.
func resolveLatestVersion(included []aps.Included, itemID string) (string, string) {
	found := false
	var best aps.Included
	for _, inc := range included {
		if inc.Relationships.Item.Data.ID != itemID {
			continue
		}
		if !found || inc.Attributes.VersionNumber > best.Attributes.VersionNumber {
			best = inc
			found = true
		}
	}

	if !found {
		return "", ""
	}

	return strconv.Itoa(best.Attributes.VersionNumber), strconv.FormatInt(best.Attributes.StorageSize, 10)
}

func (s *extractService) storeAndNotify(ctx context.Context, job extractJob, items []*model.Item, parentFolderID *string) {
	session := &model.Session{
		ID:             uuid.NewString(),
		DataType:       job.DataType,
		ParentFolderID: parentFolderID,
		Items:          items,
	}

	if err := s.repo.Sessions.Put(ctx, session); err != nil {
		s.logger.Sugar().Errorf("failed to store session(%s): %s", session.ID, err.Error())
		return
	}

	var folderID *string
	if job.FolderID != "" {
		folderID = &job.FolderID
	}
	if err := s.repo.Extractions.Create(ctx, model.Extraction{
		SessionID: session.ID,
		Guid:      job.Guid,
		HubID:     job.HubID,
		ProjectID: job.ProjectID,
		FolderID:  folderID,
		DataType:  job.DataType,
		ItemCount: len(items),
	}); err != nil {
		// audit only, the crawl itself already succeeded
		s.logger.Sugar().Errorf("failed to log extraction of session(%s): %s", session.ID, err.Error())
	}

	s.notifier.NotifySessionReady(job.ConnectionID, session.ID, job.DataType, job.Guid, parentFolderID)
}
