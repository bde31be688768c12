package commands

const (
	_etc = "/usr/local/etc/com.github.gradebook"
	_var = "/usr/local/var/com.github.gradebook"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/sheets/.google/credentials.json"
	DEFAULT_CONFIG      = _etc + "/gradebook-app-sheets.yaml"

	OPEN = "open"
)
