// Package graphql exposes the chat over HTTP and WebSocket: queries
// and mutations on POST /graphql, subscriptions over the
// graphql-transport-ws protocol on the same path.
package graphql

// Schema is the whole API surface. Upload values never travel as JSON;
// they are injected into the variables by the multipart handler.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
		subscription: Subscription
	}

	type Query {
		messages: [Message!]!
	}

	type Mutation {
		postMessage(sender: String!, content: String, file: Upload): Message!
	}

	type Subscription {
		messageAdded: Message!
	}

	type Message {
		id: ID!
		sender: String!
		content: String
		file: File
	}

	type File {
		filename: String!
		mimetype: String!
		encoding: String!
		url: String!
	}

	scalar Upload
`
