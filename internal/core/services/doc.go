// Package services implements the core application logic: building the
// retriever over the ingested corpus, answering queries, and extracting
// structured employee records from retrieved text.
package services
