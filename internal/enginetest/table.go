package enginetest

import "github.com/wippyai/ort/api"

// Table assembles the store's entries into an API table for engine.Install.
func (s *Store) Table() *api.Table {
	return &api.Table{
		CreateStatus:    s.createStatus,
		GetErrorCode:    s.getErrorCode,
		GetErrorMessage: s.getErrorMessage,
		ReleaseStatus:   s.releaseStatus,

		CreateEnv:                   s.createEnv,
		ReleaseEnv:                  s.releaseEnv,
		EnableTelemetryEvents:       s.enableTelemetryEvents,
		DisableTelemetryEvents:      s.disableTelemetryEvents,
		UpdateEnvWithCustomLogLevel: s.updateEnvWithCustomLogLevel,

		GetAllocatorWithDefaultOptions: s.getAllocatorWithDefaultOptions,
		AllocatorFree:                  s.allocatorFree,

		CreateCpuMemoryInfo:     s.createCpuMemoryInfo,
		ReleaseMemoryInfo:       s.releaseMemoryInfo,
		MemoryInfoGetName:       s.memoryInfoGetName,
		MemoryInfoGetMemType:    s.memoryInfoGetMemType,
		MemoryInfoGetDeviceType: s.memoryInfoGetDeviceType,
		GetTensorMemoryInfo:     s.getTensorMemoryInfo,

		CreateSessionOptions:                  s.createSessionOptions,
		ReleaseSessionOptions:                 s.releaseSessionOptions,
		SetIntraOpNumThreads:                  s.setIntraOpNumThreads,
		SetInterOpNumThreads:                  s.setInterOpNumThreads,
		SetSessionExecutionMode:               s.setSessionExecutionMode,
		SetSessionGraphOptimizationLevel:      s.setSessionGraphOptimizationLevel,
		EnableMemPattern:                      s.enableMemPattern,
		DisableMemPattern:                     s.disableMemPattern,
		EnableCpuMemArena:                     s.enableCpuMemArena,
		DisableCpuMemArena:                    s.disableCpuMemArena,
		SetSessionLogSeverityLevel:            s.setSessionLogSeverityLevel,
		EnableProfiling:                       s.enableProfiling,
		DisableProfiling:                      s.disableProfiling,
		AddSessionConfigEntry:                 s.addSessionConfigEntry,
		AddFreeDimensionOverrideByName:        s.addFreeDimensionOverrideByName,
		SetDeterministicCompute:               s.setDeterministicCompute,
		SessionOptionsAppendExecutionProvider: s.sessionOptionsAppendExecutionProvider,

		CreateRunOptions:    s.createRunOptions,
		ReleaseRunOptions:   s.releaseRunOptions,
		RunOptionsSetRunTag: s.runOptionsSetRunTag,
		AddRunConfigEntry:   s.addRunConfigEntry,

		CreateSession:                  s.createSession,
		CreateSessionFromArray:         s.createSessionFromArray,
		SessionGetInputCount:           s.sessionGetInputCount,
		SessionGetOutputCount:          s.sessionGetOutputCount,
		SessionGetInputName:            s.sessionGetInputName,
		SessionGetOutputName:           s.sessionGetOutputName,
		SessionGetInputTypeInfo:        s.sessionGetInputTypeInfo,
		SessionGetOutputTypeInfo:       s.sessionGetOutputTypeInfo,
		Run:                            s.run,
		ReleaseSession:                 s.releaseSession,
		SessionEndProfiling:            s.sessionEndProfiling,
		SessionGetProfilingStartTimeNs: s.sessionGetProfilingStartTimeNs,

		SessionGetModelMetadata:               s.sessionGetModelMetadata,
		ModelMetadataGetProducerName:          s.modelMetadataGetProducerName,
		ModelMetadataGetGraphName:             s.modelMetadataGetGraphName,
		ModelMetadataGetDomain:                s.modelMetadataGetDomain,
		ModelMetadataGetDescription:           s.modelMetadataGetDescription,
		ModelMetadataGetGraphDescription:      s.modelMetadataGetGraphDescription,
		ModelMetadataLookupCustomMetadataMap:  s.modelMetadataLookupCustomMetadataMap,
		ModelMetadataGetVersion:               s.modelMetadataGetVersion,
		ModelMetadataGetCustomMetadataMapKeys: s.modelMetadataGetCustomMetadataMapKeys,
		ReleaseModelMetadata:                  s.releaseModelMetadata,

		GetTypeInfo:                    s.getTypeInfo,
		GetOnnxTypeFromTypeInfo:        s.getOnnxTypeFromTypeInfo,
		CastTypeInfoToTensorInfo:       s.castTypeInfoToTensorInfo,
		CastTypeInfoToSequenceTypeInfo: s.castTypeInfoToSequenceTypeInfo,
		CastTypeInfoToMapTypeInfo:      s.castTypeInfoToMapTypeInfo,
		GetSequenceElementType:         s.getSequenceElementType,
		GetMapKeyType:                  s.getMapKeyType,
		GetMapValueType:                s.getMapValueType,
		ReleaseTypeInfo:                s.releaseTypeInfo,
		ReleaseMapTypeInfo:             s.releaseMapTypeInfo,
		ReleaseSequenceTypeInfo:        s.releaseSequenceTypeInfo,

		CreateTensorAsOrtValue:         s.createTensorAsOrtValue,
		CreateTensorWithDataAsOrtValue: s.createTensorWithDataAsOrtValue,
		IsTensor:                       s.isTensor,
		GetValueType:                   s.getValueType,
		GetTensorMutableData:           s.getTensorMutableData,
		GetTensorTypeAndShape:          s.getTensorTypeAndShape,
		GetTensorElementType:           s.getTensorElementType,
		GetDimensionsCount:             s.getDimensionsCount,
		GetDimensions:                  s.getDimensions,
		GetSymbolicDimensions:          s.getSymbolicDimensions,
		GetTensorShapeElementCount:     s.getTensorShapeElementCount,
		TensorAt:                       s.tensorAt,
		ReleaseValue:                   s.releaseValue,
		ReleaseTensorTypeAndShapeInfo:  s.releaseTensorTypeAndShapeInfo,

		FillStringTensor:          s.fillStringTensor,
		GetStringTensorDataLength: s.getStringTensorDataLength,
		GetStringTensorContent:    s.getStringTensorContent,

		GetAvailableProviders:     s.getAvailableProviders,
		ReleaseAvailableProviders: s.releaseAvailableProviders,
	}
}
