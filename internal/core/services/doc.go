// Package services implements the driving port interfaces.
// Services contain the pipeline logic and orchestrate calls to driven
// ports (adapters): loading, segmenting and cleaning pages, assembling
// articles, building the vector index and answering questions.
//
// Services are pure Go with no CGO.
package services
