// Package memic is the Go client for the Memic document-ingestion and
// semantic-search API.
//
// A Client wraps three HTTP flows: file upload via a presigned-URL
// handshake, polling-based tracking of the remote processing pipeline, and
// filtered semantic search. Chunking, embedding, and ranking all happen
// server-side; the client holds no state beyond its credentials and the
// lazily resolved organization identifier.
//
//	client, err := memic.NewClient(memic.WithAPIKey("mk_..."))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	file, err := client.UploadFile(ctx, projectId, "/path/to/doc.pdf",
//		upload.WithReferenceID("lesson_123"))
//
//	results, err := client.Search(ctx, "key findings",
//		search.InProject(projectId),
//		search.WithFilters(&core.MetadataFilters{ReferenceId: "lesson_123"}))
//	for _, r := range results.Semantic() {
//		fmt.Printf("[%.2f] %s: %s\n", r.Score, r.FileName, r.Content)
//	}
package memic
