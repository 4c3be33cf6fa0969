package engine

// apiBase mirrors OrtApiBase, the struct returned by the library's single
// exported symbol OrtGetApiBase.
type apiBase struct {
	GetApi           uintptr
	GetVersionString uintptr
}

// rawAPI mirrors the OrtApi struct: an append-only array of C function
// pointers. Field order is the ABI; it must match the C header exactly.
// Later release lines only ever add fields, so the mirror stops after the
// last entry this module binds. Fields this module never calls are kept
// solely to hold the layout.
type rawAPI struct {
	// 1.0
	CreateStatus                             uintptr
	GetErrorCode                             uintptr
	GetErrorMessage                          uintptr
	CreateEnv                                uintptr
	CreateEnvWithCustomLogger                uintptr
	EnableTelemetryEvents                    uintptr
	DisableTelemetryEvents                   uintptr
	CreateSession                            uintptr
	CreateSessionFromArray                   uintptr
	Run                                      uintptr
	CreateSessionOptions                     uintptr
	SetOptimizedModelFilePath                uintptr
	CloneSessionOptions                      uintptr
	SetSessionExecutionMode                  uintptr
	EnableProfiling                          uintptr
	DisableProfiling                         uintptr
	EnableMemPattern                         uintptr
	DisableMemPattern                        uintptr
	EnableCpuMemArena                        uintptr
	DisableCpuMemArena                       uintptr
	SetSessionLogId                          uintptr
	SetSessionLogVerbosityLevel              uintptr
	SetSessionLogSeverityLevel               uintptr
	SetSessionGraphOptimizationLevel         uintptr
	SetIntraOpNumThreads                     uintptr
	SetInterOpNumThreads                     uintptr
	CreateCustomOpDomain                     uintptr
	CustomOpDomain_Add                       uintptr
	AddCustomOpDomain                        uintptr
	RegisterCustomOpsLibrary                 uintptr
	SessionGetInputCount                     uintptr
	SessionGetOutputCount                    uintptr
	SessionGetOverridableInitializerCount    uintptr
	SessionGetInputTypeInfo                  uintptr
	SessionGetOutputTypeInfo                 uintptr
	SessionGetOverridableInitializerTypeInfo uintptr
	SessionGetInputName                      uintptr
	SessionGetOutputName                     uintptr
	SessionGetOverridableInitializerName     uintptr
	CreateRunOptions                         uintptr
	RunOptionsSetRunLogVerbosityLevel        uintptr
	RunOptionsSetRunLogSeverityLevel         uintptr
	RunOptionsSetRunTag                      uintptr
	RunOptionsGetRunLogVerbosityLevel        uintptr
	RunOptionsGetRunLogSeverityLevel         uintptr
	RunOptionsGetRunTag                      uintptr
	RunOptionsSetTerminate                   uintptr
	RunOptionsUnsetTerminate                 uintptr
	CreateTensorAsOrtValue                   uintptr
	CreateTensorWithDataAsOrtValue           uintptr
	IsTensor                                 uintptr
	GetTensorMutableData                     uintptr
	FillStringTensor                         uintptr
	GetStringTensorDataLength                uintptr
	GetStringTensorContent                   uintptr
	CastTypeInfoToTensorInfo                 uintptr
	GetOnnxTypeFromTypeInfo                  uintptr
	CreateTensorTypeAndShapeInfo             uintptr
	SetTensorElementType                     uintptr
	SetDimensions                            uintptr
	GetTensorElementType                     uintptr
	GetDimensionsCount                       uintptr
	GetDimensions                            uintptr
	GetSymbolicDimensions                    uintptr
	GetTensorShapeElementCount               uintptr
	GetTensorTypeAndShape                    uintptr
	GetTypeInfo                              uintptr
	GetValueType                             uintptr
	CreateMemoryInfo                         uintptr
	CreateCpuMemoryInfo                      uintptr
	CompareMemoryInfo                        uintptr
	MemoryInfoGetName                        uintptr
	MemoryInfoGetId                          uintptr
	MemoryInfoGetMemType                     uintptr
	MemoryInfoGetType                        uintptr
	AllocatorAlloc                           uintptr
	AllocatorFree                            uintptr
	AllocatorGetInfo                         uintptr
	GetAllocatorWithDefaultOptions           uintptr
	AddFreeDimensionOverride                 uintptr
	GetValue                                 uintptr
	GetValueCount                            uintptr
	CreateValue                              uintptr
	CreateOpaqueValue                        uintptr
	GetOpaqueValue                           uintptr
	KernelInfoGetAttribute_float             uintptr
	KernelInfoGetAttribute_int64             uintptr
	KernelInfoGetAttribute_string            uintptr
	KernelContext_GetInputCount              uintptr
	KernelContext_GetOutputCount             uintptr
	KernelContext_GetInput                   uintptr
	KernelContext_GetOutput                  uintptr
	ReleaseEnv                               uintptr
	ReleaseStatus                            uintptr
	ReleaseMemoryInfo                        uintptr
	ReleaseSession                           uintptr
	ReleaseValue                             uintptr
	ReleaseRunOptions                        uintptr
	ReleaseTypeInfo                          uintptr
	ReleaseTensorTypeAndShapeInfo            uintptr
	ReleaseSessionOptions                    uintptr
	ReleaseCustomOpDomain                    uintptr

	// 1.1
	GetDenotationFromTypeInfo            uintptr
	CastTypeInfoToMapTypeInfo            uintptr
	CastTypeInfoToSequenceTypeInfo       uintptr
	GetMapKeyType                        uintptr
	GetMapValueType                      uintptr
	GetSequenceElementType               uintptr
	ReleaseMapTypeInfo                   uintptr
	ReleaseSequenceTypeInfo              uintptr
	SessionEndProfiling                  uintptr
	SessionGetModelMetadata              uintptr
	ModelMetadataGetProducerName         uintptr
	ModelMetadataGetGraphName            uintptr
	ModelMetadataGetDomain               uintptr
	ModelMetadataGetDescription          uintptr
	ModelMetadataLookupCustomMetadataMap uintptr
	ModelMetadataGetVersion              uintptr
	ReleaseModelMetadata                 uintptr

	// 1.2
	CreateEnvWithGlobalThreadPools        uintptr
	DisablePerSessionThreads              uintptr
	CreateThreadingOptions                uintptr
	ReleaseThreadingOptions               uintptr
	ModelMetadataGetCustomMetadataMapKeys uintptr
	AddFreeDimensionOverrideByName        uintptr

	// 1.3
	GetAvailableProviders     uintptr
	ReleaseAvailableProviders uintptr

	// 1.4
	GetStringTensorElementLength   uintptr
	GetStringTensorElement         uintptr
	FillStringTensorElement        uintptr
	AddSessionConfigEntry          uintptr
	CreateAllocator                uintptr
	ReleaseAllocator               uintptr
	RunWithBinding                 uintptr
	CreateIoBinding                uintptr
	ReleaseIoBinding               uintptr
	BindInput                      uintptr
	BindOutput                     uintptr
	BindOutputToDevice             uintptr
	GetBoundOutputNames            uintptr
	GetBoundOutputValues           uintptr
	ClearBoundInputs               uintptr
	ClearBoundOutputs              uintptr
	TensorAt                       uintptr
	CreateAndRegisterAllocator     uintptr
	SetLanguageProjection          uintptr
	SessionGetProfilingStartTimeNs uintptr
	SetGlobalIntraOpNumThreads     uintptr
	SetGlobalInterOpNumThreads     uintptr
	SetGlobalSpinControl           uintptr

	// 1.5
	AddInitializer                                 uintptr
	CreateEnvWithCustomLoggerAndGlobalThreadPools  uintptr
	SessionOptionsAppendExecutionProvider_CUDA     uintptr
	SessionOptionsAppendExecutionProvider_ROCM     uintptr
	SessionOptionsAppendExecutionProvider_OpenVINO uintptr
	SetGlobalDenormalAsZero                        uintptr
	CreateArenaCfg                                 uintptr
	ReleaseArenaCfg                                uintptr

	// 1.6
	ModelMetadataGetGraphDescription               uintptr
	SessionOptionsAppendExecutionProvider_TensorRT uintptr
	SetCurrentGpuDeviceId                          uintptr
	GetCurrentGpuDeviceId                          uintptr

	// 1.7
	KernelInfoGetAttributeArray_float                   uintptr
	KernelInfoGetAttributeArray_int64                   uintptr
	CreateArenaCfgV2                                    uintptr
	AddRunConfigEntry                                   uintptr
	CreatePrepackedWeightsContainer                     uintptr
	ReleasePrepackedWeightsContainer                    uintptr
	CreateSessionWithPrepackedWeightsContainer          uintptr
	CreateSessionFromArrayWithPrepackedWeightsContainer uintptr

	// 1.8
	SessionOptionsAppendExecutionProvider_TensorRT_V2 uintptr
	CreateTensorRTProviderOptions                     uintptr
	UpdateTensorRTProviderOptions                     uintptr
	GetTensorRTProviderOptionsAsString                uintptr
	ReleaseTensorRTProviderOptions                    uintptr
	EnableOrtCustomOps                                uintptr
	RegisterAllocator                                 uintptr
	UnregisterAllocator                               uintptr
	IsSparseTensor                                    uintptr
	CreateSparseTensorAsOrtValue                      uintptr
	FillSparseTensorCoo                               uintptr
	FillSparseTensorCsr                               uintptr
	FillSparseTensorBlockSparse                       uintptr
	CreateSparseTensorWithValuesAsOrtValue            uintptr
	UseCooIndices                                     uintptr
	UseCsrIndices                                     uintptr
	UseBlockSparseIndices                             uintptr
	GetSparseTensorFormat                             uintptr
	GetSparseTensorValuesTypeAndShape                 uintptr
	GetSparseTensorValues                             uintptr
	GetSparseTensorIndicesTypeShape                   uintptr
	GetSparseTensorIndices                            uintptr

	// 1.9
	HasValue                                     uintptr
	KernelContext_GetGPUComputeStream            uintptr
	GetTensorMemoryInfo                          uintptr
	GetExecutionProviderApi                      uintptr
	SessionOptionsSetCustomCreateThreadFn        uintptr
	SessionOptionsSetCustomThreadCreationOptions uintptr
	SessionOptionsSetCustomJoinThreadFn          uintptr
	SetGlobalCustomCreateThreadFn                uintptr
	SetGlobalCustomThreadCreationOptions         uintptr
	SetGlobalCustomJoinThreadFn                  uintptr
	SynchronizeBoundInputs                       uintptr
	SynchronizeBoundOutputs                      uintptr

	// 1.10
	SessionOptionsAppendExecutionProvider_CUDA_V2  uintptr
	CreateCUDAProviderOptions                      uintptr
	UpdateCUDAProviderOptions                      uintptr
	GetCUDAProviderOptionsAsString                 uintptr
	ReleaseCUDAProviderOptions                     uintptr
	SessionOptionsAppendExecutionProvider_MIGraphX uintptr

	// 1.11
	AddExternalInitializers               uintptr
	CreateOpAttr                          uintptr
	ReleaseOpAttr                         uintptr
	CreateOp                              uintptr
	InvokeOp                              uintptr
	ReleaseOp                             uintptr
	SessionOptionsAppendExecutionProvider uintptr
	CopyKernelInfo                        uintptr
	ReleaseKernelInfo                     uintptr

	// 1.12
	GetTrainingApi                             uintptr
	SessionOptionsAppendExecutionProvider_CANN uintptr
	CreateCANNProviderOptions                  uintptr
	UpdateCANNProviderOptions                  uintptr
	GetCANNProviderOptionsAsString             uintptr
	ReleaseCANNProviderOptions                 uintptr
	MemoryInfoGetDeviceType                    uintptr
	UpdateEnvWithCustomLogLevel                uintptr
	SetGlobalIntraOpThreadAffinity             uintptr
	RegisterCustomOpsLibrary_V2                uintptr
	RegisterCustomOpsUsingFunction             uintptr
	KernelInfo_GetInputCount                   uintptr
	KernelInfo_GetOutputCount                  uintptr
	KernelInfo_GetInputName                    uintptr
	KernelInfo_GetOutputName                   uintptr
	KernelInfo_GetInputTypeInfo                uintptr
	KernelInfo_GetOutputTypeInfo               uintptr
	KernelInfoGetAttribute_tensor              uintptr
	HasSessionConfigEntry                      uintptr
	GetSessionConfigEntry                      uintptr

	// 1.13
	SessionOptionsAppendExecutionProvider_Dnnl uintptr
	CreateDnnlProviderOptions                  uintptr
	UpdateDnnlProviderOptions                  uintptr
	GetDnnlProviderOptionsAsString             uintptr
	ReleaseDnnlProviderOptions                 uintptr
	KernelInfo_GetNodeName                     uintptr
	KernelInfo_GetLogger                       uintptr
	KernelContext_GetLogger                    uintptr
	Logger_LogMessage                          uintptr
	Logger_GetLoggingSeverityLevel             uintptr
	KernelInfoGetConstantInput_tensor          uintptr
	CastTypeInfoToOptionalTypeInfo             uintptr
	GetOptionalContainedTypeInfo               uintptr
	GetResizedStringTensorElementBuffer        uintptr
	KernelContext_GetAllocator                 uintptr

	// 1.14
	GetBuildInfoString uintptr

	// 1.15 and 1.16
	CreateROCMProviderOptions              uintptr
	UpdateROCMProviderOptions              uintptr
	GetROCMProviderOptionsAsString         uintptr
	ReleaseROCMProviderOptions             uintptr
	CreateAndRegisterAllocatorV2           uintptr
	RunAsync                               uintptr
	UpdateTensorRTProviderOptionsWithValue uintptr
	GetTensorRTProviderOptionsByName       uintptr
	UpdateCUDAProviderOptionsWithValue     uintptr
	GetCUDAProviderOptionsByName           uintptr
	KernelContext_GetResource              uintptr

	// 1.17
	SetUserLoggingFunction                            uintptr
	ShapeInferContext_GetInputCount                   uintptr
	ShapeInferContext_GetInputTypeShape               uintptr
	ShapeInferContext_GetAttribute                    uintptr
	ShapeInferContext_SetOutputTypeShape              uintptr
	SetSymbolicDimensions                             uintptr
	ReadOpAttr                                        uintptr
	SetDeterministicCompute                           uintptr
	KernelContext_ParallelFor                         uintptr
	SessionOptionsAppendExecutionProvider_OpenVINO_V2 uintptr

	// 1.18
	SessionOptionsAppendExecutionProvider_VitisAI uintptr
	KernelContext_GetScratchBuffer                uintptr
	KernelInfoGetAllocator                        uintptr
	AddExternalInitializersFromFilesInMemory      uintptr

	// 1.20
	CreateLoraAdapter              uintptr
	CreateLoraAdapterFromArray     uintptr
	ReleaseLoraAdapter             uintptr
	RunOptionsAddActiveLoraAdapter uintptr
	SetEpDynamicOptions            uintptr

	// Later generations add further entries. None are bound here, so the
	// mirror stops at the 1.20 fence.
}
