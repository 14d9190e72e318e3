package storefront

import "github.com/goliatone/go-storefront/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrImporterTimeoutInvalid  = runtimeconfig.ErrImporterTimeoutInvalid
	ErrImporterMaxBytesInvalid = runtimeconfig.ErrImporterMaxBytesInvalid
	ErrCacheTTLRequiresCache   = runtimeconfig.ErrCacheTTLRequiresCache
	ErrTemplateDirRequiresFlag = runtimeconfig.ErrTemplateDirRequiresFlag
)

type (
	Config          = runtimeconfig.Config
	StorageConfig   = runtimeconfig.StorageConfig
	CacheConfig     = runtimeconfig.CacheConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	ImporterConfig  = runtimeconfig.ImporterConfig
	MediaConfig     = runtimeconfig.MediaConfig
	TemplatesConfig = runtimeconfig.TemplatesConfig
	HTTPConfig      = runtimeconfig.HTTPConfig
	Features        = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
