package http

import (
	authUsecases "github.com/keshevplus/leadhub/internal/application/auth/usecases"
	contactUsecases "github.com/keshevplus/leadhub/internal/application/contact/usecases"
	submissionUsecases "github.com/keshevplus/leadhub/internal/application/submission/usecases"
)

// allUseCases holds the use cases behind the HTTP handlers.
type allUseCases struct {
	// Contact intake
	submitContactUC *contactUsecases.SubmitContactUseCase

	// Admin lead facade
	listSubmissionsUC  *submissionUsecases.ListSubmissionsUseCase
	getSubmissionUC    *submissionUsecases.GetSubmissionUseCase
	updateSubmissionUC *submissionUsecases.UpdateSubmissionUseCase
	deleteSubmissionUC *submissionUsecases.DeleteSubmissionUseCase
	markReadUC         *submissionUsecases.MarkReadUseCase
	unreadCountUC      *submissionUsecases.UnreadCountUseCase

	// Admin auth
	loginUC         *authUsecases.LoginUseCase
	logoutUC        *authUsecases.LogoutUseCase
	currentAdminUC  *authUsecases.GetCurrentAdminUseCase
	requestResetUC  *authUsecases.RequestPasswordResetUseCase
	resetPasswordUC *authUsecases.ResetPasswordUseCase
}

func (c *Container) initUseCases() {
	identityRepo := c.repos.identityRepo
	submissionRepo := c.repos.submissionRepo

	contactLog := c.log.Named("contact")
	leadLog := c.log.Named("lead")
	authLog := c.log.Named("auth")

	c.ucs = &allUseCases{
		submitContactUC: contactUsecases.NewSubmitContactUseCase(
			contactUsecases.NewResolveIdentityUseCase(identityRepo, contactLog),
			contactUsecases.NewRecordSubmissionUseCase(submissionRepo, contactLog),
			c.dispatcher,
			contactLog,
		),

		listSubmissionsUC:  submissionUsecases.NewListSubmissionsUseCase(submissionRepo, leadLog),
		getSubmissionUC:    submissionUsecases.NewGetSubmissionUseCase(submissionRepo, leadLog),
		updateSubmissionUC: submissionUsecases.NewUpdateSubmissionUseCase(submissionRepo, leadLog),
		deleteSubmissionUC: submissionUsecases.NewDeleteSubmissionUseCase(submissionRepo, leadLog),
		markReadUC:         submissionUsecases.NewMarkReadUseCase(submissionRepo, leadLog),
		unreadCountUC:      submissionUsecases.NewUnreadCountUseCase(submissionRepo, leadLog),

		loginUC:        authUsecases.NewLoginUseCase(identityRepo, c.hasher, c.jwtSvc, authLog),
		logoutUC:       authUsecases.NewLogoutUseCase(identityRepo, authLog),
		currentAdminUC: authUsecases.NewGetCurrentAdminUseCase(identityRepo, authLog),
		requestResetUC: authUsecases.NewRequestPasswordResetUseCase(
			identityRepo, c.jwtSvc, c.dispatcher, c.cfg.Server.FrontendURL, authLog,
		),
		resetPasswordUC: authUsecases.NewResetPasswordUseCase(identityRepo, c.hasher, c.jwtSvc, authLog),
	}
}
