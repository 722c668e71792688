package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyDialogDBType string = "DIALOG_DB_TYPE"
	EnvKeyDialogDbPath string = "DIALOG_DB_PATH"

	EnvKeyDialogHttpHostPort string = "DIALOG_HTTP_HOST_PORT"
	EnvKeyDialogGrpcHostPort string = "DIALOG_GRPC_HOST_PORT"

	EnvKeyDialogDefaultRate  string = "DIALOG_DEFAULT_RATE"
	EnvKeyDialogDefaultBurst string = "DIALOG_DEFAULT_BURST"

	EnvKeyDialogJwtSecret   string = "DIALOG_JWT_SECRET"
	EnvKeyDialogRequireAuth string = "DIALOG_REQUIRE_AUTH"

	EnvKeyDialogAPIBaseURL string = "DIALOG_API_BASE_URL"
	EnvKeyDialogAPITimeout string = "DIALOG_API_TIMEOUT"
	EnvKeyDialogToken      string = "DIALOG_TOKEN"

	EnvKeyDialogOAuthTokenURL string = "DIALOG_OAUTH_TOKEN_URL"
	EnvKeyDialogOAuthClientID string = "DIALOG_OAUTH_CLIENT_ID"

	LoggerNameDialogCore    string = "dialog_core"
	LoggerNameRecordsCore   string = "records_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameAPIClient     string = "api_client"

	LoggerFieldCategory string = "category"

	LoggerCategoryGlucose   string = "glucose"
	LoggerCategoryCondition string = "condition"
	LoggerCategorySubmit    string = "submit"
	LoggerCategoryNotify    string = "notify"
	LoggerCategoryPatient   string = "patient"
	LoggerCategoryAuth      string = "auth"
	LoggerCategoryClient    string = "client"
)
