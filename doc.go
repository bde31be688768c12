// Copyright 2026 The gradebook-app-sheets Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package gradebook-app-sheets classifies the students in a Google Sheets gradebook from their absences and
scores and writes the final situation back to the worksheet.

gradebook-app-sheets can be used from the command line but is really intended to be run from a cron job to keep
the 'situation' and 'make-up exam' columns of a class worksheet up to date.

gradebook-app-sheets supports the following commands:

  - authorise, to authorise application access to the Google Sheets worksheet
  - grade, to classify the students in a worksheet and write the situation and make-up target to the worksheet
  - get, to download the classified grades as a TSV file
  - put, to upload the situation and make-up columns of a TSV file to the worksheet
  - version, to display the application version
*/
package sheets
