package config

// DEV_CONFIG_YML seeds '.agenda.dev.yaml' on the first --dev run. It
// keeps every file the app touches inside the working directory.
const DEV_CONFIG_YML = `
database:
  name: agenda-dev.db
  passPhrase: passphrase

listener:
  port: 3000

backup:
  schedule: "*/30 * * * *"
  timeZone: "America/Toronto"

google:
  applicationCredentials:
  storage:
    bucket: "agenda"
    prefix: "agenda-dev"
    enableBackupSync: false

owner:
  email:

settings:
  timezone: "America/Toronto"
  touchbase-recurrence: "RRULE:FREQ=WEEKLY;"
`
