package volume

// Storage result codes, numbered as the FAT layer reports them.
const (
	CodeOK           = 0
	CodeDiskErr      = 1
	CodeIntErr       = 2
	CodeNotReady     = 3
	CodeNoFile       = 4
	CodeNoPath       = 5
	CodeInvalidName  = 6
	CodeDenied       = 7
	CodeExist        = 8
	CodeNoFilesystem = 13
)
