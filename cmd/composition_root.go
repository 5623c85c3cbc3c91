package cmd

import (
	"log/slog"

	"packing/internal/adapters/in/stream"
	"packing/internal/adapters/out/billing"
	"packing/internal/adapters/out/postgres"
	"packing/internal/adapters/out/sessionstore"
	"packing/internal/core/application/usecases/commands"
	"packing/internal/core/application/usecases/queries"
	"packing/internal/core/domain/services"
	"packing/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	sessionStore  *sessionstore.InMemorySessionStore
	billingClient *billing.Client
	pooler        services.ItemPooler
	logger        *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	billingClient, err := billing.NewClient(config.BillingBaseURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		sessionStore:  sessionstore.NewInMemorySessionStore(),
		billingClient: billingClient,
		pooler:        services.NewItemPooler(),
		logger:        logger,
	}, nil
}

func (c *CompositionRoot) holdUoWFactory() commands.HoldUoWFactory {
	return FuncHoldUoWFactory(func() commands.HoldUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateStartSessionCommandHandler() commands.StartSessionCommandHandler {
	return commands.NewStartSessionCommandHandler(
		c.sessionStore, c.billingClient, c.pooler, c.holdUoWFactory())
}

func (c *CompositionRoot) CreateAbandonSessionCommandHandler() commands.AbandonSessionCommandHandler {
	return commands.NewAbandonSessionCommandHandler(c.sessionStore)
}

func (c *CompositionRoot) CreateCompleteSessionCommandHandler() commands.CompleteSessionCommandHandler {
	return commands.NewCompleteSessionCommandHandler(c.sessionStore, c.billingClient)
}

func (c *CompositionRoot) CreateCreateContainerCommandHandler() commands.CreateContainerCommandHandler {
	return commands.NewCreateContainerCommandHandler(c.sessionStore)
}

func (c *CompositionRoot) CreateCompleteContainerCommandHandler() commands.CompleteContainerCommandHandler {
	return commands.NewCompleteContainerCommandHandler(c.sessionStore)
}

func (c *CompositionRoot) CreateRemoveContainerCommandHandler() commands.RemoveContainerCommandHandler {
	return commands.NewRemoveContainerCommandHandler(c.sessionStore)
}

func (c *CompositionRoot) CreateMarkContainerLabeledCommandHandler() commands.MarkContainerLabeledCommandHandler {
	return commands.NewMarkContainerLabeledCommandHandler(c.sessionStore)
}

func (c *CompositionRoot) CreateAssignItemCommandHandler() commands.AssignItemCommandHandler {
	return commands.NewAssignItemCommandHandler(c.sessionStore)
}

func (c *CompositionRoot) CreateFillRemainderCommandHandler() commands.FillRemainderCommandHandler {
	return commands.NewFillRemainderCommandHandler(c.sessionStore)
}

func (c *CompositionRoot) CreateUnassignItemCommandHandler() commands.UnassignItemCommandHandler {
	return commands.NewUnassignItemCommandHandler(c.sessionStore)
}

func (c *CompositionRoot) CreateReportIssueCommandHandler() commands.ReportIssueCommandHandler {
	return commands.NewReportIssueCommandHandler(c.sessionStore)
}

func (c *CompositionRoot) CreateSendToReviewCommandHandler() commands.SendToReviewCommandHandler {
	return commands.NewSendToReviewCommandHandler(c.sessionStore, c.billingClient)
}

func (c *CompositionRoot) CreateHoldOrderCommandHandler() commands.HoldOrderCommandHandler {
	return commands.NewHoldOrderCommandHandler(c.holdUoWFactory())
}

func (c *CompositionRoot) CreateProceedWithGroupCommandHandler() commands.ProceedWithGroupCommandHandler {
	return commands.NewProceedWithGroupCommandHandler(
		c.sessionStore, c.billingClient, c.pooler, c.holdUoWFactory())
}

func (c *CompositionRoot) CreateApplySyncEventCommandHandler() commands.ApplySyncEventCommandHandler {
	return commands.NewApplySyncEventCommandHandler(
		c.sessionStore, c.billingClient, c.pooler, c.logger)
}

func (c *CompositionRoot) CreateGetSessionStateQueryHandler() queries.GetSessionStateQueryHandler {
	return queries.NewGetSessionStateQueryHandler(c.sessionStore)
}

func (c *CompositionRoot) CreateGetContainerManifestsQueryHandler() queries.GetContainerManifestsQueryHandler {
	return queries.NewGetContainerManifestsQueryHandler(c.sessionStore)
}

func (c *CompositionRoot) CreateGetHeldOrdersQueryHandler() queries.GetHeldOrdersQueryHandler {
	return queries.NewGetHeldOrdersQueryHandler(c.gormDB)
}

// CreateSyncStreamClient wires the websocket stream to the sync event applier.
func (c *CompositionRoot) CreateSyncStreamClient(url string) (*stream.Client, error) {
	applier := c.CreateApplySyncEventCommandHandler()
	return stream.NewClient(url, &applier, c.logger)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	return jobs.NewJobManager(c.sessionStore, config.SessionTTL, c.logger)
}

type FuncHoldUoWFactory func() commands.HoldUoW

func (f FuncHoldUoWFactory) Create() commands.HoldUoW {
	return f()
}
