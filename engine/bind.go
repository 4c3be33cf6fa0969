package engine

import (
	"github.com/ebitengine/purego"

	"github.com/wippyai/ort/api"
)

// bind fills an api.Table from the raw function pointer array. Every entry
// the table declares exists in any engine that passed the version check, so
// no slot is nil-checked here.
func bind(raw *rawAPI) *api.Table {
	t := new(api.Table)

	purego.RegisterFunc(&t.CreateStatus, raw.CreateStatus)
	purego.RegisterFunc(&t.GetErrorCode, raw.GetErrorCode)
	purego.RegisterFunc(&t.GetErrorMessage, raw.GetErrorMessage)
	purego.RegisterFunc(&t.ReleaseStatus, raw.ReleaseStatus)

	purego.RegisterFunc(&t.CreateEnv, raw.CreateEnv)
	purego.RegisterFunc(&t.ReleaseEnv, raw.ReleaseEnv)
	purego.RegisterFunc(&t.EnableTelemetryEvents, raw.EnableTelemetryEvents)
	purego.RegisterFunc(&t.DisableTelemetryEvents, raw.DisableTelemetryEvents)
	purego.RegisterFunc(&t.UpdateEnvWithCustomLogLevel, raw.UpdateEnvWithCustomLogLevel)

	purego.RegisterFunc(&t.GetAllocatorWithDefaultOptions, raw.GetAllocatorWithDefaultOptions)
	purego.RegisterFunc(&t.AllocatorFree, raw.AllocatorFree)

	purego.RegisterFunc(&t.CreateCpuMemoryInfo, raw.CreateCpuMemoryInfo)
	purego.RegisterFunc(&t.ReleaseMemoryInfo, raw.ReleaseMemoryInfo)
	purego.RegisterFunc(&t.MemoryInfoGetName, raw.MemoryInfoGetName)
	purego.RegisterFunc(&t.MemoryInfoGetMemType, raw.MemoryInfoGetMemType)
	purego.RegisterFunc(&t.MemoryInfoGetDeviceType, raw.MemoryInfoGetDeviceType)
	purego.RegisterFunc(&t.GetTensorMemoryInfo, raw.GetTensorMemoryInfo)

	purego.RegisterFunc(&t.CreateSessionOptions, raw.CreateSessionOptions)
	purego.RegisterFunc(&t.ReleaseSessionOptions, raw.ReleaseSessionOptions)
	purego.RegisterFunc(&t.SetIntraOpNumThreads, raw.SetIntraOpNumThreads)
	purego.RegisterFunc(&t.SetInterOpNumThreads, raw.SetInterOpNumThreads)
	purego.RegisterFunc(&t.SetSessionExecutionMode, raw.SetSessionExecutionMode)
	purego.RegisterFunc(&t.SetSessionGraphOptimizationLevel, raw.SetSessionGraphOptimizationLevel)
	purego.RegisterFunc(&t.EnableMemPattern, raw.EnableMemPattern)
	purego.RegisterFunc(&t.DisableMemPattern, raw.DisableMemPattern)
	purego.RegisterFunc(&t.EnableCpuMemArena, raw.EnableCpuMemArena)
	purego.RegisterFunc(&t.DisableCpuMemArena, raw.DisableCpuMemArena)
	purego.RegisterFunc(&t.SetSessionLogSeverityLevel, raw.SetSessionLogSeverityLevel)
	purego.RegisterFunc(&t.EnableProfiling, raw.EnableProfiling)
	purego.RegisterFunc(&t.DisableProfiling, raw.DisableProfiling)
	purego.RegisterFunc(&t.AddSessionConfigEntry, raw.AddSessionConfigEntry)
	purego.RegisterFunc(&t.AddFreeDimensionOverrideByName, raw.AddFreeDimensionOverrideByName)
	purego.RegisterFunc(&t.SetDeterministicCompute, raw.SetDeterministicCompute)
	purego.RegisterFunc(&t.SessionOptionsAppendExecutionProvider, raw.SessionOptionsAppendExecutionProvider)

	purego.RegisterFunc(&t.CreateRunOptions, raw.CreateRunOptions)
	purego.RegisterFunc(&t.ReleaseRunOptions, raw.ReleaseRunOptions)
	purego.RegisterFunc(&t.RunOptionsSetRunTag, raw.RunOptionsSetRunTag)
	purego.RegisterFunc(&t.AddRunConfigEntry, raw.AddRunConfigEntry)

	purego.RegisterFunc(&t.CreateSession, raw.CreateSession)
	purego.RegisterFunc(&t.CreateSessionFromArray, raw.CreateSessionFromArray)
	purego.RegisterFunc(&t.SessionGetInputCount, raw.SessionGetInputCount)
	purego.RegisterFunc(&t.SessionGetOutputCount, raw.SessionGetOutputCount)
	purego.RegisterFunc(&t.SessionGetInputName, raw.SessionGetInputName)
	purego.RegisterFunc(&t.SessionGetOutputName, raw.SessionGetOutputName)
	purego.RegisterFunc(&t.SessionGetInputTypeInfo, raw.SessionGetInputTypeInfo)
	purego.RegisterFunc(&t.SessionGetOutputTypeInfo, raw.SessionGetOutputTypeInfo)
	purego.RegisterFunc(&t.Run, raw.Run)
	purego.RegisterFunc(&t.ReleaseSession, raw.ReleaseSession)
	purego.RegisterFunc(&t.SessionEndProfiling, raw.SessionEndProfiling)
	purego.RegisterFunc(&t.SessionGetProfilingStartTimeNs, raw.SessionGetProfilingStartTimeNs)

	purego.RegisterFunc(&t.SessionGetModelMetadata, raw.SessionGetModelMetadata)
	purego.RegisterFunc(&t.ModelMetadataGetProducerName, raw.ModelMetadataGetProducerName)
	purego.RegisterFunc(&t.ModelMetadataGetGraphName, raw.ModelMetadataGetGraphName)
	purego.RegisterFunc(&t.ModelMetadataGetDomain, raw.ModelMetadataGetDomain)
	purego.RegisterFunc(&t.ModelMetadataGetDescription, raw.ModelMetadataGetDescription)
	purego.RegisterFunc(&t.ModelMetadataGetGraphDescription, raw.ModelMetadataGetGraphDescription)
	purego.RegisterFunc(&t.ModelMetadataLookupCustomMetadataMap, raw.ModelMetadataLookupCustomMetadataMap)
	purego.RegisterFunc(&t.ModelMetadataGetVersion, raw.ModelMetadataGetVersion)
	purego.RegisterFunc(&t.ModelMetadataGetCustomMetadataMapKeys, raw.ModelMetadataGetCustomMetadataMapKeys)
	purego.RegisterFunc(&t.ReleaseModelMetadata, raw.ReleaseModelMetadata)

	purego.RegisterFunc(&t.GetTypeInfo, raw.GetTypeInfo)
	purego.RegisterFunc(&t.GetOnnxTypeFromTypeInfo, raw.GetOnnxTypeFromTypeInfo)
	purego.RegisterFunc(&t.CastTypeInfoToTensorInfo, raw.CastTypeInfoToTensorInfo)
	purego.RegisterFunc(&t.CastTypeInfoToSequenceTypeInfo, raw.CastTypeInfoToSequenceTypeInfo)
	purego.RegisterFunc(&t.CastTypeInfoToMapTypeInfo, raw.CastTypeInfoToMapTypeInfo)
	purego.RegisterFunc(&t.GetSequenceElementType, raw.GetSequenceElementType)
	purego.RegisterFunc(&t.GetMapKeyType, raw.GetMapKeyType)
	purego.RegisterFunc(&t.GetMapValueType, raw.GetMapValueType)
	purego.RegisterFunc(&t.ReleaseTypeInfo, raw.ReleaseTypeInfo)
	purego.RegisterFunc(&t.ReleaseMapTypeInfo, raw.ReleaseMapTypeInfo)
	purego.RegisterFunc(&t.ReleaseSequenceTypeInfo, raw.ReleaseSequenceTypeInfo)

	purego.RegisterFunc(&t.CreateTensorAsOrtValue, raw.CreateTensorAsOrtValue)
	purego.RegisterFunc(&t.CreateTensorWithDataAsOrtValue, raw.CreateTensorWithDataAsOrtValue)
	purego.RegisterFunc(&t.IsTensor, raw.IsTensor)
	purego.RegisterFunc(&t.GetValueType, raw.GetValueType)
	purego.RegisterFunc(&t.GetTensorMutableData, raw.GetTensorMutableData)
	purego.RegisterFunc(&t.GetTensorTypeAndShape, raw.GetTensorTypeAndShape)
	purego.RegisterFunc(&t.GetTensorElementType, raw.GetTensorElementType)
	purego.RegisterFunc(&t.GetDimensionsCount, raw.GetDimensionsCount)
	purego.RegisterFunc(&t.GetDimensions, raw.GetDimensions)
	purego.RegisterFunc(&t.GetSymbolicDimensions, raw.GetSymbolicDimensions)
	purego.RegisterFunc(&t.GetTensorShapeElementCount, raw.GetTensorShapeElementCount)
	purego.RegisterFunc(&t.TensorAt, raw.TensorAt)
	purego.RegisterFunc(&t.ReleaseValue, raw.ReleaseValue)
	purego.RegisterFunc(&t.ReleaseTensorTypeAndShapeInfo, raw.ReleaseTensorTypeAndShapeInfo)

	purego.RegisterFunc(&t.FillStringTensor, raw.FillStringTensor)
	purego.RegisterFunc(&t.GetStringTensorDataLength, raw.GetStringTensorDataLength)
	purego.RegisterFunc(&t.GetStringTensorContent, raw.GetStringTensorContent)

	purego.RegisterFunc(&t.GetAvailableProviders, raw.GetAvailableProviders)
	purego.RegisterFunc(&t.ReleaseAvailableProviders, raw.ReleaseAvailableProviders)

	purego.RegisterFunc(&t.GetBuildInfoString, raw.GetBuildInfoString)

	return t
}
